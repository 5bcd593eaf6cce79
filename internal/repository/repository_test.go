package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/catalogadmin/backend/internal/database"
	"github.com/catalogadmin/backend/internal/models"
)

// RepositoryTestSuite runs against a disposable PostgreSQL database named by TEST_DATABASE_DSN.
type RepositoryTestSuite struct {
	suite.Suite
	db       *gorm.DB
	admins   *AdminsRepository
	products *ProductsRepository
}

func (suite *RepositoryTestSuite) SetupSuite() {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		suite.T().Skip("TEST_DATABASE_DSN not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)
	suite.Require().NoError(database.RunMigrations(db))

	suite.db = db
	suite.admins = NewAdminRepository(db)
	suite.products = NewProductRepository(db)
}

func (suite *RepositoryTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE product_images, products, admins").Error)
}

func (suite *RepositoryTestSuite) TearDownSuite() {
	if suite.db != nil {
		database.Close(suite.db)
	}
}

func (suite *RepositoryTestSuite) createAdmin(email string) *models.Admin {
	admin := &models.Admin{Name: email, Email: email, PasswordHash: "hash"}
	suite.Require().NoError(suite.admins.Create(context.Background(), admin))
	return admin
}

func (suite *RepositoryTestSuite) createProduct(adminID uuid.UUID, sku string, urls ...string) *models.Product {
	ctx := context.Background()
	product := &models.Product{AdminID: adminID, SKU: sku, Name: "Shoe", Price: decimal.RequireFromString("10.50")}
	suite.Require().NoError(suite.products.Create(ctx, product))
	for _, url := range urls {
		suite.Require().NoError(suite.products.AddImage(ctx, &models.ProductImage{ProductID: product.ID, URL: url}))
	}
	return product
}

func (suite *RepositoryTestSuite) TestDuplicateEmail() {
	suite.createAdmin("ann@x.com")

	err := suite.admins.Create(context.Background(), &models.Admin{Name: "Ann", Email: "ann@x.com", PasswordHash: "hash"})
	suite.ErrorIs(err, ErrDuplicateEmail)
}

func (suite *RepositoryTestSuite) TestListByAdmin() {
	ctx := context.Background()
	ann := suite.createAdmin("ann@x.com")
	bob := suite.createAdmin("bob@x.com")
	suite.createProduct(ann.ID, "A1", "https://img/1", "https://img/2")
	suite.createProduct(ann.ID, "A2")
	suite.createProduct(bob.ID, "B1", "https://img/3")

	products, total, err := suite.products.ListByAdmin(ctx, ann.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(2), total)
	suite.Require().Len(products, 2)
	suite.Equal("A1", products[0].SKU)
	suite.Equal([]string{"https://img/1", "https://img/2"}, products[0].ImageURLs())
	suite.True(decimal.RequireFromString("10.5").Equal(products[0].Price))
	suite.Empty(products[1].Images)
}

func (suite *RepositoryTestSuite) TestOwnerScoping() {
	ctx := context.Background()
	ann := suite.createAdmin("ann@x.com")
	bob := suite.createAdmin("bob@x.com")
	product := suite.createProduct(ann.ID, "A1", "https://img/1")

	_, err := suite.products.GetOwned(ctx, bob.ID, product.ID)
	suite.ErrorIs(err, ErrProductNotFound)

	product.AdminID = bob.ID
	product.Name = "Stolen"
	suite.ErrorIs(suite.products.UpdateFields(ctx, product), ErrProductNotFound)
	suite.ErrorIs(suite.products.Delete(ctx, bob.ID, product.ID), ErrProductNotFound)

	owned, err := suite.products.GetOwned(ctx, ann.ID, product.ID)
	suite.Require().NoError(err)
	suite.Equal("Shoe", owned.Name)
	suite.Len(owned.Images, 1)
}

func (suite *RepositoryTestSuite) TestUpdateFieldsRefreshesUpdatedAt() {
	ctx := context.Background()
	ann := suite.createAdmin("ann@x.com")
	product := suite.createProduct(ann.ID, "A1")
	before := product.UpdatedAt

	product.Price = decimal.RequireFromString("12.25")
	suite.Require().NoError(suite.products.UpdateFields(ctx, product))
	suite.True(product.UpdatedAt.After(before))

	stored, err := suite.products.GetOwned(ctx, ann.ID, product.ID)
	suite.Require().NoError(err)
	suite.True(decimal.RequireFromString("12.25").Equal(stored.Price))
	suite.WithinDuration(product.UpdatedAt, stored.UpdatedAt, time.Millisecond)
}

func (suite *RepositoryTestSuite) TestDeleteProductRemovesImages() {
	ctx := context.Background()
	ann := suite.createAdmin("ann@x.com")
	product := suite.createProduct(ann.ID, "A1", "https://img/1", "https://img/2")

	suite.Require().NoError(suite.products.Delete(ctx, ann.ID, product.ID))

	var images int64
	suite.Require().NoError(suite.db.Model(&models.ProductImage{}).Where("product_id = ?", product.ID).Count(&images).Error)
	suite.Zero(images)
}

func (suite *RepositoryTestSuite) TestDeleteAdminCascades() {
	ctx := context.Background()
	ann := suite.createAdmin("ann@x.com")
	bob := suite.createAdmin("bob@x.com")
	suite.createProduct(ann.ID, "A1", "https://img/1")
	suite.createProduct(bob.ID, "B1", "https://img/2")

	suite.Require().NoError(suite.admins.Delete(ctx, ann.ID))
	suite.ErrorIs(suite.admins.Delete(ctx, ann.ID), ErrAdminNotFound)

	var products, images int64
	suite.Require().NoError(suite.db.Model(&models.Product{}).Count(&products).Error)
	suite.Require().NoError(suite.db.Model(&models.ProductImage{}).Count(&images).Error)
	suite.Equal(int64(1), products)
	suite.Equal(int64(1), images)
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositoryTestSuite))
}
