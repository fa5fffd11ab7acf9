package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"auction-service/internal/db"
	"auction-service/internal/models"
)

// ReportRepository defines interactions for user reports.
type ReportRepository interface {
	Create(ctx context.Context, report models.Report) (models.Report, error)
}

// ReportRepo is a mongo-backed repository.
type ReportRepo struct {
	col *mongo.Collection
}

// NewReportRepo constructs ReportRepo.
func NewReportRepo(database *mongo.Database) *ReportRepo {
	return &ReportRepo{col: database.Collection(db.ReportsCollection)}
}

// Create stores a report.
func (r *ReportRepo) Create(ctx context.Context, report models.Report) (models.Report, error) {
	report.CreatedAt = time.Now().UTC()
	res, err := r.col.InsertOne(ctx, report)
	if err != nil {
		return models.Report{}, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		report.ID = oid
	}
	return report, nil
}
