package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hera_backend/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Collection names of the document-store backend.
const (
	reviewsCollection        = "employee_reviews"
	codesCollection          = "verification_codes"
	issuancesCollection      = "verification_issuances"
	verifiedUsersCollection  = "verified_users"
	companyDomainsCollection = "company_email_domains"
)

// companyDomainsDocument keeps all domains of one employer in one document.
type companyDomainsDocument struct {
	Ticker       string   `bson:"_id"`
	CompanyName  string   `bson:"company_name"`
	EmailDomains []string `bson:"email_domains"`
}

// EnsureMongoIndexes creates the indexes the review backend relies on.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		reviewsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "company_ticker", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "company_ticker", Value: 1}, {Key: "published", Value: 1}}},
		},
		codesCollection: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "expires_at", Value: 1}}},
		},
		issuancesCollection: {
			{Keys: bson.D{{Key: "email_hash", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		verifiedUsersCollection: {
			{Keys: bson.D{{Key: "email_hash", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		companyDomainsCollection: {
			{Keys: bson.D{{Key: "email_domains", Value: 1}}},
		},
	}

	for coll, idx := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// --- reviews ---

type MongoReviewRepository struct {
	reviews *mongo.Collection
}

func NewMongoReviewRepository(db *mongo.Database) ReviewRepository {
	return &MongoReviewRepository{reviews: db.Collection(reviewsCollection)}
}

func (r *MongoReviewRepository) CreateReview(ctx context.Context, review *models.EmployeeReview) error {
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = utcNow()
	}
	_, err := r.reviews.InsertOne(ctx, review)
	return err
}

func (r *MongoReviewRepository) FindRecentReview(ctx context.Context, userID, ticker string, since time.Time) (*models.EmployeeReview, error) {
	filter := bson.D{
		{Key: "user_id", Value: userID},
		{Key: "company_ticker", Value: ticker},
		{Key: "created_at", Value: bson.D{{Key: "$gte", Value: since}}},
	}
	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})

	var review models.EmployeeReview
	if err := r.reviews.FindOne(ctx, filter, opts).Decode(&review); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *MongoReviewRepository) FindPublishedByTicker(ctx context.Context, ticker string) ([]models.EmployeeReview, error) {
	filter := bson.D{{Key: "company_ticker", Value: ticker}, {Key: "published", Value: true}}
	cur, err := r.reviews.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}

	reviews := []models.EmployeeReview{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

// --- verification ---

type MongoVerificationRepository struct {
	codes     *mongo.Collection
	issuances *mongo.Collection
	users     *mongo.Collection
	domains   *mongo.Collection
}

func NewMongoVerificationRepository(db *mongo.Database) VerificationRepository {
	return &MongoVerificationRepository{
		codes:     db.Collection(codesCollection),
		issuances: db.Collection(issuancesCollection),
		users:     db.Collection(verifiedUsersCollection),
		domains:   db.Collection(companyDomainsCollection),
	}
}

func (r *MongoVerificationRepository) CreateCode(ctx context.Context, code *models.VerificationCode) error {
	stampBase(&code.BaseModel)
	_, err := r.codes.InsertOne(ctx, code)
	return err
}

func (r *MongoVerificationRepository) FindCode(ctx context.Context, code string) (*models.VerificationCode, error) {
	var vc models.VerificationCode
	if err := r.codes.FindOne(ctx, bson.D{{Key: "code", Value: code}}).Decode(&vc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCodeNotFound
		}
		return nil, err
	}
	return &vc, nil
}

func (r *MongoVerificationRepository) DeleteCode(ctx context.Context, id string) (bool, error) {
	res, err := r.codes.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *MongoVerificationRepository) DeleteExpiredCodes(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.codes.DeleteMany(ctx, bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lte", Value: now}}}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoVerificationRepository) RecordIssuance(ctx context.Context, emailHash string, at time.Time) error {
	doc := models.VerificationIssuance{
		BaseModel: models.BaseModel{ID: uuid.NewString(), CreatedAt: at},
		EmailHash: emailHash,
	}
	_, err := r.issuances.InsertOne(ctx, doc)
	return err
}

func (r *MongoVerificationRepository) CountIssuancesSince(ctx context.Context, emailHash string, since time.Time) (int64, error) {
	return r.issuances.CountDocuments(ctx, bson.D{
		{Key: "email_hash", Value: emailHash},
		{Key: "created_at", Value: bson.D{{Key: "$gt", Value: since}}},
	})
}

func (r *MongoVerificationRepository) DeleteIssuancesBefore(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.issuances.DeleteMany(ctx, bson.D{{Key: "created_at", Value: bson.D{{Key: "$lte", Value: before}}}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoVerificationRepository) FindUserByEmailHash(ctx context.Context, emailHash string) (*models.VerifiedUser, error) {
	var user models.VerifiedUser
	if err := r.users.FindOne(ctx, bson.D{{Key: "email_hash", Value: emailHash}}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrVerifiedUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *MongoVerificationRepository) CreateVerifiedUser(ctx context.Context, user *models.VerifiedUser) error {
	_, err := r.users.InsertOne(ctx, user)
	return err
}

func (r *MongoVerificationRepository) FindCompanyByDomain(ctx context.Context, domain string) (*models.EmployerCompany, error) {
	var doc companyDomainsDocument
	err := r.domains.FindOne(ctx, bson.D{{Key: "email_domains", Value: strings.ToLower(domain)}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCompanyDomainNotFound
		}
		return nil, err
	}
	return &models.EmployerCompany{Ticker: doc.Ticker, CompanyName: doc.CompanyName}, nil
}

func (r *MongoVerificationRepository) ListCompanies(ctx context.Context) ([]models.EmployerCompany, error) {
	cur, err := r.domains.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "company_name", Value: 1}}))
	if err != nil {
		return nil, err
	}

	var docs []companyDomainsDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	companies := make([]models.EmployerCompany, 0, len(docs))
	for _, d := range docs {
		companies = append(companies, models.EmployerCompany{Ticker: d.Ticker, CompanyName: d.CompanyName})
	}
	return companies, nil
}

func (r *MongoVerificationRepository) UpsertCompanyDomains(ctx context.Context, company models.EmployerCompany, domains []string) error {
	normalized := make([]string, 0, len(domains))
	for _, d := range domains {
		if d = strings.ToLower(strings.TrimSpace(d)); d != "" {
			normalized = append(normalized, d)
		}
	}

	update := bson.D{
		{Key: "$set", Value: bson.D{{Key: "company_name", Value: company.CompanyName}}},
		{Key: "$addToSet", Value: bson.D{{Key: "email_domains", Value: bson.D{{Key: "$each", Value: normalized}}}}},
	}
	_, err := r.domains.UpdateOne(ctx, bson.D{{Key: "_id", Value: company.Ticker}}, update, options.UpdateOne().SetUpsert(true))
	return err
}

func stampBase(m *models.BaseModel) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = utcNow()
	}
}
