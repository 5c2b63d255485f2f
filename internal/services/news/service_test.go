package news

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

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

	s.service = New(s.storage, media.New(uploads, logger), s.clock,
		Config{Organization: "Vanguard Esports"}, logger)
	s.ctx = context.Background()
}

func (s *ServiceSuite) create(title string) *model.NewsArticle {
	article, err := s.service.Create(s.ctx, CreateInput{Title: title, Content: "body"}, "admin")
	s.Require().NoError(err)
	return article
}

func (s *ServiceSuite) countNews() int {
	all, err := s.storage.ListNews(s.ctx, 0)
	s.Require().NoError(err)
	return len(all)
}

// Create tests

func (s *ServiceSuite) TestCreateAssignsIDAndTimestamp() {
	article := s.create("Roster announcement")

	s.Len(article.ID, 24)
	s.Equal(s.clock.Now(), article.CreatedAt)

	stored, err := s.storage.GetNews(s.ctx, article.ID)
	s.Require().NoError(err)
	s.Equal("Roster announcement", stored.Title)
}

func (s *ServiceSuite) TestCreateMissingTitleOrContent() {
	_, err := s.service.Create(s.ctx, CreateInput{Content: "body"}, "admin")
	var ve *model.ValidationError
	s.Require().ErrorAs(err, &ve)
	s.Equal("title", ve.Field)

	_, err = s.service.Create(s.ctx, CreateInput{Title: "t", Content: "  "}, "admin")
	s.Require().ErrorAs(err, &ve)
	s.Equal("content", ve.Field)

	s.Equal(0, s.countNews())
}

func (s *ServiceSuite) TestCreateAuthorFallbacks() {
	withBody, err := s.service.Create(s.ctx, CreateInput{Title: "a", Content: "b", Author: "Coach"}, "admin")
	s.Require().NoError(err)
	s.Equal("Coach", withBody.Author)

	fromSession, err := s.service.Create(s.ctx, CreateInput{Title: "a", Content: "b"}, "admin")
	s.Require().NoError(err)
	s.Equal("admin", fromSession.Author)

	fromOrg, err := s.service.Create(s.ctx, CreateInput{Title: "a", Content: "b"}, "")
	s.Require().NoError(err)
	s.Equal("Vanguard Esports", fromOrg.Author)
}

func (s *ServiceSuite) TestCreateWithUploadedImage() {
	file := testutil.FileHeader(s.T(), "cover.png", "image/png", []byte("png"))

	article, err := s.service.Create(s.ctx, CreateInput{Title: "a", Content: "b", Image: "https://x/y.png", File: file}, "admin")
	s.Require().NoError(err)
	s.True(s.uploads.IsManaged(article.Image))

	_, err = os.Stat(filepath.Join(s.uploads.Dir(), filepath.Base(article.Image)))
	s.NoError(err)
}

func (s *ServiceSuite) TestCreateRejectsNonImage() {
	file := testutil.FileHeader(s.T(), "notes.txt", "text/plain", []byte("hi"))

	_, err := s.service.Create(s.ctx, CreateInput{Title: "a", Content: "b", File: file}, "admin")
	s.ErrorIs(err, model.ErrInvalidImage)
	s.Equal(0, s.countNews())
}

// List tests

func (s *ServiceSuite) TestListPublicLimits() {
	for i := range 5 {
		s.create("news")
		s.clock.Advance(time.Duration(i+1) * time.Minute)
	}

	all, err := s.service.ListPublic(s.ctx, 0)
	s.Require().NoError(err)
	s.Len(all, 5)

	limited, err := s.service.ListPublic(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(limited, 2)

	s.service.cfg.PublicLimit = 3
	capped, err := s.service.ListPublic(s.ctx, 10)
	s.Require().NoError(err)
	s.Len(capped, 3)

	admin, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Len(admin, 5)
}

func (s *ServiceSuite) TestListNewestFirst() {
	s.create("older")
	s.clock.Advance(time.Hour)
	s.create("newer")

	articles, err := s.service.List(s.ctx)
	s.Require().NoError(err)
	s.Equal("newer", articles[0].Title)
}

// Update tests

func (s *ServiceSuite) TestUpdatePartial() {
	article := s.create("Original")
	title := "Edited"

	updated, err := s.service.Update(s.ctx, article.ID, UpdateInput{Title: &title})
	s.Require().NoError(err)
	s.Equal("Edited", updated.Title)
	s.Equal("body", updated.Content)
	s.Equal(article.CreatedAt, updated.CreatedAt)
}

func (s *ServiceSuite) TestUpdateRejectsBlankTitle() {
	article := s.create("Original")
	blank := " "

	_, err := s.service.Update(s.ctx, article.ID, UpdateInput{Title: &blank})
	var ve *model.ValidationError
	s.ErrorAs(err, &ve)
}

func (s *ServiceSuite) TestUpdateNotFoundAndInvalidID() {
	title := "x"
	_, err := s.service.Update(s.ctx, model.NewID(), UpdateInput{Title: &title})
	s.ErrorIs(err, model.ErrNewsNotFound)

	_, err = s.service.Update(s.ctx, "123", UpdateInput{Title: &title})
	s.ErrorIs(err, model.ErrInvalidID)
}

func (s *ServiceSuite) TestUpdateReplacesManagedImage() {
	first := testutil.FileHeader(s.T(), "a.png", "image/png", []byte("a"))
	article, err := s.service.Create(s.ctx, CreateInput{Title: "a", Content: "b", File: first}, "admin")
	s.Require().NoError(err)
	oldPath := filepath.Join(s.uploads.Dir(), filepath.Base(article.Image))

	s.clock.Advance(time.Second)
	second := testutil.FileHeader(s.T(), "b.png", "image/png", []byte("b"))
	updated, err := s.service.Update(s.ctx, article.ID, UpdateInput{File: second})
	s.Require().NoError(err)
	s.NotEqual(article.Image, updated.Image)

	_, err = os.Stat(oldPath)
	s.True(errors.Is(err, os.ErrNotExist))
}

// Delete tests

func (s *ServiceSuite) TestDelete() {
	article := s.create("Gone soon")

	s.Require().NoError(s.service.Delete(s.ctx, article.ID))

	_, err := s.service.Get(s.ctx, article.ID)
	s.ErrorIs(err, model.ErrNewsNotFound)
}

func (s *ServiceSuite) TestDeleteNotFoundLeavesStoreUnchanged() {
	s.create("Keep me")

	err := s.service.Delete(s.ctx, model.NewID())
	s.ErrorIs(err, model.ErrNewsNotFound)
	s.Equal(1, s.countNews())
}
