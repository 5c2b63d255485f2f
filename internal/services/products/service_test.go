package products

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/vanguardgg/sitecms/internal/dependencies/mocks"
	"github.com/vanguardgg/sitecms/internal/model"
	"github.com/vanguardgg/sitecms/internal/services/media"
	"github.com/vanguardgg/sitecms/internal/storage/memory"
	"github.com/vanguardgg/sitecms/internal/testutil"
	"github.com/vanguardgg/sitecms/internal/upload"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	uploads *upload.Store
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	logger := testutil.NopLogger()

	uploads, err := upload.New(s.T().TempDir(), s.clock, mocks.NewMockRandom(), logger)
	s.Require().NoError(err)
	s.uploads = uploads

	s.service = New(s.storage, media.New(uploads, logger), s.clock, logger)
	s.ctx = context.Background()
}

func price(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func boolPtr(b bool) *bool {
	return &b
}

func jersey() CreateInput {
	return CreateInput{
		Name:     "Home Jersey 2025",
		Price:    price("69.99"),
		Image:    "https://cdn.example.com/jersey.png",
		Category: model.CategoryJerseys,
	}
}

func (s *ServiceSuite) TestCreateDefaultsInStock() {
	product, err := s.service.Create(s.ctx, jersey())
	s.Require().NoError(err)
	s.True(product.InStock)
	s.Equal("69.99", product.Price.String())
}

func (s *ServiceSuite) TestCreateValidation() {
	cases := map[string]func(*CreateInput){
		"name":     func(in *CreateInput) { in.Name = "" },
		"price":    func(in *CreateInput) { in.Price = nil },
		"category": func(in *CreateInput) { in.Category = "weapons" },
		"image":    func(in *CreateInput) { in.Image = "" },
	}
	for field, mutate := range cases {
		in := jersey()
		mutate(&in)

		_, err := s.service.Create(s.ctx, in)
		var ve *model.ValidationError
		s.Require().ErrorAs(err, &ve, field)
		s.Equal(field, ve.Field)
	}

	all, _ := s.service.List(s.ctx)
	s.Empty(all)
}

func (s *ServiceSuite) TestCreateNegativePrice() {
	in := jersey()
	in.Price = price("-1")

	_, err := s.service.Create(s.ctx, in)
	var ve *model.ValidationError
	s.Require().ErrorAs(err, &ve)
	s.Equal("price", ve.Field)
}

func (s *ServiceSuite) TestCreateFreeProduct() {
	in := jersey()
	in.Price = price("0")

	product, err := s.service.Create(s.ctx, in)
	s.Require().NoError(err)
	s.True(product.Price.IsZero())
}

func (s *ServiceSuite) TestCreateWithUploadedImage() {
	in := jersey()
	in.Image = ""
	in.File = testutil.FileHeader(s.T(), "jersey.gif", "image/gif", []byte("gif"))

	product, err := s.service.Create(s.ctx, in)
	s.Require().NoError(err)
	s.True(s.uploads.IsManaged(product.Image))
}

func (s *ServiceSuite) TestInStockRoundTrip() {
	in := jersey()
	in.InStock = boolPtr(false)
	product, err := s.service.Create(s.ctx, in)
	s.Require().NoError(err)

	public, err := s.service.ListInStock(s.ctx)
	s.Require().NoError(err)
	s.Empty(public)

	_, err = s.service.GetInStock(s.ctx, product.ID)
	s.ErrorIs(err, model.ErrProductNotFound)

	_, err = s.service.Update(s.ctx, product.ID, UpdateInput{InStock: boolPtr(true)})
	s.Require().NoError(err)

	public, err = s.service.ListInStock(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(public, 1)
	s.Equal(product.ID, public[0].ID)

	admin, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(admin, 1)
}

func (s *ServiceSuite) TestUpdateValidation() {
	product, err := s.service.Create(s.ctx, jersey())
	s.Require().NoError(err)

	bad := model.ProductCategory("weapons")
	_, err = s.service.Update(s.ctx, product.ID, UpdateInput{Category: &bad})
	var ve *model.ValidationError
	s.Require().ErrorAs(err, &ve)
	s.Equal("category", ve.Field)

	_, err = s.service.Update(s.ctx, product.ID, UpdateInput{Price: price("-5")})
	s.Require().ErrorAs(err, &ve)
	s.Equal("price", ve.Field)

	empty := ""
	_, err = s.service.Update(s.ctx, product.ID, UpdateInput{Image: &empty})
	s.Require().ErrorAs(err, &ve)
	s.Equal("image", ve.Field)
}

func (s *ServiceSuite) TestUpdateChangesPrice() {
	product, err := s.service.Create(s.ctx, jersey())
	s.Require().NoError(err)

	updated, err := s.service.Update(s.ctx, product.ID, UpdateInput{Price: price("49.50")})
	s.Require().NoError(err)
	s.Equal("49.5", updated.Price.String())
	s.Equal(model.CategoryJerseys, updated.Category)
}

func (s *ServiceSuite) TestDelete() {
	product, err := s.service.Create(s.ctx, jersey())
	s.Require().NoError(err)

	s.Require().NoError(s.service.Delete(s.ctx, product.ID))
	s.ErrorIs(s.service.Delete(s.ctx, product.ID), model.ErrProductNotFound)
}
