// @title           Hera API
// @version         1.0
// @description     Corporate accountability scores, spending-based portfolios and anonymous employee reviews.
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:3001
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization

package main

import "hera_backend/internal/app"

func main() {
	app.Run()
}
