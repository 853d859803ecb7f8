package repository

import (
	"regexp"
	"testing"

	"go-sales-crm/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newSale() (*model.Sale, []model.SaleItem) {
	sale := &model.Sale{
		CustomerID:   uuid.New(),
		Platform:     model.PlatformPhone,
		ShippingCost: decimal.RequireFromString("30"),
	}
	sale.Stamp("ayse@example.com")
	items := []model.SaleItem{
		{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.RequireFromString("250")},
		{ProductID: uuid.New(), Quantity: 1, UnitPrice: decimal.RequireFromString("2.50")},
	}
	return sale, items
}

func TestCreateWithItemsCommitsHeaderAndLines(t *testing.T) {
	db, mock := newMockDB(t)
	sale, items := newSale()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "sales"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "sale_items"`)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, NewSaleRepo(db).CreateWithItems(sale, items))
	assert.NotEqual(t, uuid.Nil, sale.ID)
	require.Len(t, sale.Items, 2)
	for _, it := range sale.Items {
		assert.Equal(t, sale.ID, it.SaleID)
		assert.Equal(t, "ayse@example.com", it.CreatedBy)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithItemsRollsBackHeaderWhenLinesFail(t *testing.T) {
	db, mock := newMockDB(t)
	sale, items := newSale()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "sales"`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "sale_items"`)).
		WillReturnError(errors.New("insert or update on table \"sale_items\" violates foreign key constraint"))
	mock.ExpectRollback()

	err := NewSaleRepo(db).CreateWithItems(sale, items)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "foreign key")
	assert.Nil(t, sale.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWithItemsRollsBackWhenHeaderFails(t *testing.T) {
	db, mock := newMockDB(t)
	sale, items := newSale()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "sales"`)).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	require.Error(t, NewSaleRepo(db).CreateWithItems(sale, items))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceWithItemsMissingSale(t *testing.T) {
	db, mock := newMockDB(t)
	sale, items := newSale()
	sale.ID = uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "sales" SET`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := NewSaleRepo(db).ReplaceWithItems(sale, items)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceWithItemsSwapsLines(t *testing.T) {
	db, mock := newMockDB(t)
	sale, items := newSale()
	sale.ID = uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "sales" SET`)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "sale_items" WHERE sale_id = $1`)).
		WithArgs(sale.ID).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "sale_items"`)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, NewSaleRepo(db).ReplaceWithItems(sale, items))
	assert.Len(t, sale.Items, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomerUpdateDoesNotResurrectDeletedRow(t *testing.T) {
	db, mock := newMockDB(t)
	customer := &model.Customer{Name: "Zeynep", Surname: "Demir", City: "İstanbul", Town: "Kadıköy", Address: "Moda"}
	customer.ID = uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "customers" SET`)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := NewCustomerRepo(db).Update(customer)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewFindAllFilters(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "interviews" WHERE .*sale_succeeded = \$1.*operator = \$2.*` +
		`EXISTS \(SELECT 1 FROM customers c .*EXISTS \(SELECT 1 FROM products p .*ORDER BY interview_date DESC`).
		WithArgs(true, "Ayşe Yılmaz", "%lazer%", "%lazer%", "%lazer%", "%lazer%").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := NewInterviewRepo(db).FindAll(InterviewFilter{
		Status:   InterviewStatusSuccess,
		Operator: "Ayşe Yılmaz",
		Search:   " Lazer ",
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInterviewOperators(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT DISTINCT .*operator.* FROM "interviews" WHERE operator <> ''.*ORDER BY operator ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"operator"}).AddRow("Ayşe Yılmaz").AddRow("Mehmet Kaya"))

	got, err := NewInterviewRepo(db).Operators()
	require.NoError(t, err)
	assert.Equal(t, []string{"Ayşe Yılmaz", "Mehmet Kaya"}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleFindAllSearch(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "sales" WHERE .*is_canceled = \$1.*LOWER\(platform\) LIKE \$2.*` +
		`EXISTS \(SELECT 1 FROM customers c .*EXISTS \(SELECT 1 FROM sale_items si JOIN products p .*ORDER BY sale_date DESC`).
		WithArgs(false, "%serum%", "%serum%", "%serum%", "%serum%").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := NewSaleRepo(db).FindAll(SaleFilter{Status: SaleStatusActive, Search: "Serum"})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
