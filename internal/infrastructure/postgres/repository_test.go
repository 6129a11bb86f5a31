// Package postgres provides integration tests for the PostgreSQL repositories.
package postgres_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mutugading/goapps-backend/services/uom/internal/domain/shared"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uom"
	"github.com/mutugading/goapps-backend/services/uom/internal/domain/uomstatus"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/config"
	"github.com/mutugading/goapps-backend/services/uom/internal/infrastructure/postgres"
)

// RepositorySuite runs both repositories against a migrated database.
type RepositorySuite struct {
	suite.Suite
	db       *postgres.DB
	statuses *postgres.UOMStatusRepository
	uoms     *postgres.UOMRepository
	ctx      context.Context
}

func TestRepositorySuite(t *testing.T) {
	if os.Getenv("INTEGRATION_TEST") != "true" {
		t.Skip("Skipping integration test. Set INTEGRATION_TEST=true to run.")
	}
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupSuite() {
	s.ctx = context.Background()

	cfg := &config.DatabaseConfig{
		Host:            getEnvOrDefault("TEST_DB_HOST", "localhost"),
		Port:            5432,
		User:            getEnvOrDefault("TEST_DB_USER", "uom"),
		Password:        getEnvOrDefault("TEST_DB_PASSWORD", "uom123"),
		Name:            getEnvOrDefault("TEST_DB_NAME", "uom_db_test"),
		SSLMode:         "disable",
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: time.Minute,
	}

	db, err := postgres.NewConnection(cfg)
	s.Require().NoError(err)
	s.Require().NoError(db.Migrate())

	s.db = db
	s.statuses = postgres.NewUOMStatusRepository(db)
	s.uoms = postgres.NewUOMRepository(db)
}

func (s *RepositorySuite) TearDownSuite() {
	if s.db != nil {
		_ = s.db.Close()
	}
}

func (s *RepositorySuite) SetupTest() {
	_, err := s.db.ExecContext(s.ctx, `TRUNCATE uom, uom_status RESTART IDENTITY CASCADE`)
	s.Require().NoError(err)
}

func (s *RepositorySuite) createStatus(name string) *uomstatus.Status {
	entity, err := uomstatus.NewStatus(name, "", true)
	s.Require().NoError(err)
	created, err := s.statuses.Create(s.ctx, entity)
	s.Require().NoError(err)
	return created
}

func (s *RepositorySuite) createUOM(name, factor string, statusID int64) *uom.UOM {
	entity, err := uom.NewUOM(name, "", uom.MustConversionFactor(factor), statusID)
	s.Require().NoError(err)
	created, err := s.uoms.Create(s.ctx, entity)
	s.Require().NoError(err)
	return created
}

func (s *RepositorySuite) TestStatus_CreateAndGet() {
	created := s.createStatus("Active")
	s.Positive(created.ID())

	got, err := s.statuses.GetByID(s.ctx, created.ID())
	s.Require().NoError(err)
	s.Equal("Active", got.Name())
	s.Empty(got.Description())
	s.True(got.IsUsable())
}

func (s *RepositorySuite) TestStatus_NameIsCaseSensitive() {
	s.createStatus("Active")

	taken, err := s.statuses.ExistsByName(s.ctx, "active")
	s.Require().NoError(err)
	s.False(taken)

	_, err = s.statuses.Create(s.ctx, mustStatus("active"))
	s.NoError(err)

	_, err = s.statuses.Create(s.ctx, mustStatus("Active"))
	s.ErrorIs(err, shared.ErrResourceConflict)
}

func (s *RepositorySuite) TestStatus_ListSearchAndFilter() {
	for _, name := range []string{"Active", "Inactive", "Deprecated"} {
		s.createStatus(name)
	}
	name := "ACTIVE"
	filter := uomstatus.NewListFilter(0, 10)
	filter.Name = &name
	items, total, err := s.statuses.List(s.ctx, filter)
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(items, 2)
	s.Equal("Active", items[0].Name())

	pct := "%"
	filter.Name = &pct
	_, total, err = s.statuses.List(s.ctx, filter)
	s.Require().NoError(err)
	s.Zero(total)
}

func (s *RepositorySuite) TestStatus_DeleteReferencedFails() {
	status := s.createStatus("Active")
	s.createUOM("Kilogram", "1000", status.ID())

	err := s.statuses.Delete(s.ctx, status.ID())
	s.Require().Error(err)
	s.NotErrorIs(err, shared.ErrResourceNotFound)

	err = s.statuses.Delete(s.ctx, 999)
	s.ErrorIs(err, shared.ErrResourceNotFound)
}

func (s *RepositorySuite) TestUOM_CreateGetAndUpdate() {
	status := s.createStatus("Active")
	created := s.createUOM("Kilogram", "1000", status.ID())

	got, err := s.uoms.GetByName(s.ctx, "KILOGRAM")
	s.Require().NoError(err)
	s.Equal(created.ID(), got.ID())
	s.Equal("1000.000", got.ConversionFactor().String())

	factor := uom.MustConversionFactor("999.5")
	s.Require().NoError(got.Update(nil, nil, &factor))
	s.Require().NoError(s.uoms.Update(s.ctx, got))

	got, err = s.uoms.GetByID(s.ctx, created.ID())
	s.Require().NoError(err)
	s.Equal("999.500", got.ConversionFactor().String())
}

func (s *RepositorySuite) TestUOM_NameIgnoresCase() {
	status := s.createStatus("Active")
	s.createUOM("Meter", "1", status.ID())

	taken, err := s.uoms.ExistsByNameIgnoreCase(s.ctx, "mEtEr")
	s.Require().NoError(err)
	s.True(taken)

	_, err = s.uoms.Create(s.ctx, mustUOM("METER", status.ID()))
	s.ErrorIs(err, shared.ErrResourceConflict)
}

func (s *RepositorySuite) TestUOM_UnknownStatusIsNotFound() {
	_, err := s.uoms.Create(s.ctx, mustUOM("Meter", 12345))

	var appErr *shared.Error
	s.Require().True(errors.As(err, &appErr))
	s.Equal(shared.KindResourceNotFound, appErr.Kind)
	s.Equal(uomstatus.EntityName, appErr.Args[0])
}

func (s *RepositorySuite) TestUOM_ListByStatusSorted() {
	active := s.createStatus("Active")
	other := s.createStatus("Inactive")
	for i := 1; i <= 5; i++ {
		s.createUOM(fmt.Sprintf("Unit %d", i), fmt.Sprint(i), active.ID())
	}
	s.createUOM("Elsewhere", "1", other.ID())

	statusID := active.ID()
	filter := uom.ListFilter{
		StatusID: &statusID,
		Page:     shared.NewPageRequest(1, 2, shared.Sort{Property: "conversionFactorToBase", Direction: shared.SortDesc}),
	}
	s.Require().NoError(filter.Validate())

	items, total, err := s.uoms.List(s.ctx, filter)
	s.Require().NoError(err)
	s.Equal(int64(5), total)
	s.Require().Len(items, 2)
	s.Equal("Unit 3", items[0].Name())
	s.Equal("Unit 2", items[1].Name())
}

func (s *RepositorySuite) TestWithinTransaction_RollsBack() {
	status := s.createStatus("Active")

	err := s.db.WithinTransaction(s.ctx, func(ctx context.Context) error {
		if _, err := s.uoms.Create(ctx, mustUOM("Liter", status.ID())); err != nil {
			return err
		}
		return sql.ErrTxDone
	})
	s.ErrorIs(err, sql.ErrTxDone)

	taken, err := s.uoms.ExistsByNameIgnoreCase(s.ctx, "Liter")
	s.Require().NoError(err)
	s.False(taken)
}

// =============================================================================
// Helpers
// =============================================================================

func mustStatus(name string) *uomstatus.Status {
	entity, err := uomstatus.NewStatus(name, "", true)
	if err != nil {
		panic(err)
	}
	return entity
}

func mustUOM(name string, statusID int64) *uom.UOM {
	entity, err := uom.NewUOM(name, "", uom.MustConversionFactor("1"), statusID)
	if err != nil {
		panic(err)
	}
	return entity
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
