// Package docs holds the Swagger document served under /swagger.
// Regenerate with: swag init -g cmd/web/main.go
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {"tags": ["health"], "summary": "Liveness check", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/companies/{ticker}": {
            "get": {
                "tags": ["companies"], "summary": "Latest accountability analysis", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Ticker symbol", "name": "ticker", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not analyzed", "schema": {"$ref": "#/definitions/apperrors.ErrorResponse"}}}
            }
        },
        "/companies/{ticker}/alternatives": {
            "get": {
                "tags": ["companies"], "summary": "Better-scoring peers in the same industry", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Ticker symbol", "name": "ticker", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/analyze/{ticker}": {
            "post": {
                "tags": ["companies"], "summary": "Start an analysis job", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Ticker symbol", "name": "ticker", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/analyze/{ticker}/status": {
            "get": {
                "tags": ["companies"], "summary": "Poll an analysis job", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Ticker symbol", "name": "ticker", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/portfolio/scan": {
            "post": {"tags": ["portfolio"], "summary": "Score a list of holdings", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/resolve": {
            "post": {"tags": ["resolve"], "summary": "Map merchant names to tickers", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/nessie/setup-demo": {
            "post": {"tags": ["nessie"], "summary": "Create a demo customer with purchases", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/nessie/login": {
            "post": {"tags": ["nessie"], "summary": "Log in as a banking customer", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/nessie/customers": {
            "get": {"tags": ["nessie"], "summary": "List banking customers", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/nessie/profile/{id}": {
            "get": {
                "tags": ["nessie"], "summary": "Spending profile grouped into holdings", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Customer ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/nessie/profile/{id}/analyze-all": {
            "post": {
                "tags": ["nessie"], "summary": "Trigger analyses for every unanalyzed holding", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Customer ID", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/plaid/link-token": {
            "get": {"tags": ["plaid"], "summary": "Create a Plaid Link token", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/plaid/exchange-token": {
            "post": {"tags": ["plaid"], "summary": "Exchange a Plaid public token", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/reviews/auth/request-verification": {
            "post": {"tags": ["reviews"], "summary": "Email a one-time code to a work address", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "404": {"description": "Unknown email domain"}, "429": {"description": "Too many codes"}}}
        },
        "/reviews/auth/verify": {
            "post": {"tags": ["reviews"], "summary": "Exchange a code for a reviewer token", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid or expired code"}}}
        },
        "/reviews/auth/login-demo": {
            "post": {"tags": ["reviews"], "summary": "Issue a reviewer token without email verification", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "403": {"description": "Demo mode disabled"}}}
        },
        "/reviews/submit": {
            "post": {"security": [{"BearerAuth": []}], "tags": ["reviews"], "summary": "Submit an anonymous review", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}, "403": {"description": "Not verified for this company"}, "429": {"description": "Cooldown"}}}
        },
        "/reviews/company/{ticker}/aggregate": {
            "get": {
                "tags": ["reviews"], "summary": "Recency-weighted review aggregate", "produces": ["application/json"],
                "parameters": [{"type": "string", "description": "Ticker symbol", "name": "ticker", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/reviews/company-domains": {
            "get": {"tags": ["reviews"], "summary": "Employers accepting reviews", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/community/action": {
            "post": {"tags": ["community"], "summary": "Record an anonymous action", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        },
        "/community/activity": {
            "get": {"tags": ["community"], "summary": "Recent community actions", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "apperrors.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "domain": {"type": "string"},
                        "message": {"type": "string"}
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:3001",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Hera API",
	Description:      "Corporate accountability scores, spending-based portfolios and anonymous employee reviews.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
