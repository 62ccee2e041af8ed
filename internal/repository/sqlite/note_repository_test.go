package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/studyflash/internal/models"
	"github.com/vytor/studyflash/internal/repository"
	"github.com/vytor/studyflash/internal/repository/sqlite"
	"github.com/vytor/studyflash/internal/testutil"
)

type NoteRepositorySuite struct {
	suite.Suite
	db        *sql.DB
	repo      repository.NoteRepository
	profileID int64
	base      time.Time
}

func (s *NoteRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewNoteRepository(s.db)
	s.profileID = testutil.InsertProfile(s.T(), s.db, "reader")
	s.base = time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC)
}

func (s *NoteRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *NoteRepositorySuite) insert(title, content string, age time.Duration) int64 {
	id, err := s.repo.Insert(context.Background(), models.Note{
		ProfileID: s.profileID,
		Title:     title,
		Content:   content,
		CreatedAt: s.base.Add(-age),
	})
	s.Require().NoError(err)
	return id
}

func (s *NoteRepositorySuite) titles(notes []models.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}

func (s *NoteRepositorySuite) TestList_SortAndSearch() {
	ctx := context.Background()
	s.insert("beta", "cell walls", 2*time.Hour)
	s.insert("Alpha", "mitochondria", time.Hour)
	s.insert("gamma", "ribosomes and cell membranes", 3*time.Hour)

	newest, err := s.repo.List(ctx, models.NoteFilter{ProfileID: s.profileID})
	s.Require().NoError(err)
	s.Equal([]string{"Alpha", "beta", "gamma"}, s.titles(newest))

	oldest, err := s.repo.List(ctx, models.NoteFilter{ProfileID: s.profileID, Sort: models.NoteSortOldest})
	s.Require().NoError(err)
	s.Equal([]string{"gamma", "beta", "Alpha"}, s.titles(oldest))

	byTitle, err := s.repo.List(ctx, models.NoteFilter{ProfileID: s.profileID, Sort: models.NoteSortTitle})
	s.Require().NoError(err)
	s.Equal([]string{"Alpha", "beta", "gamma"}, s.titles(byTitle))

	found, err := s.repo.List(ctx, models.NoteFilter{ProfileID: s.profileID, Search: "cell", Sort: models.NoteSortOldest})
	s.Require().NoError(err)
	s.Equal([]string{"gamma", "beta"}, s.titles(found))

	page, err := s.repo.List(ctx, models.NoteFilter{ProfileID: s.profileID, Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Equal([]string{"beta"}, s.titles(page))
}

func (s *NoteRepositorySuite) TestList_EmptyIsNotNil() {
	notes, err := s.repo.List(context.Background(), models.NoteFilter{ProfileID: s.profileID})
	s.Require().NoError(err)
	s.NotNil(notes)
	s.Empty(notes)
}

func (s *NoteRepositorySuite) TestGetUpdateDelete() {
	ctx := context.Background()
	id := s.insert("Draft", "first", 0)

	note, err := s.repo.Get(ctx, id, s.profileID)
	s.Require().NoError(err)
	s.Require().NotNil(note)
	s.Equal("first", note.Content)

	note.Title = "Final"
	note.Content = "second"
	note.UpdatedAt = s.base.Add(time.Hour)
	s.Require().NoError(s.repo.Update(ctx, *note))
	s.Require().NoError(s.repo.UpdateSummary(ctx, id, "short", s.base.Add(2*time.Hour)))

	got, err := s.repo.Get(ctx, id, s.profileID)
	s.Require().NoError(err)
	s.Equal("Final", got.Title)
	s.Equal("second", got.Content)
	s.Equal("short", got.Summary)

	missing, err := s.repo.Get(ctx, id, s.profileID+1)
	s.Require().NoError(err)
	s.Nil(missing)

	s.ErrorIs(s.repo.Delete(ctx, id, s.profileID+1), repository.ErrNotFound)
	s.Require().NoError(s.repo.Delete(ctx, id, s.profileID))
	s.ErrorIs(s.repo.Update(ctx, *note), repository.ErrNotFound)
}

func TestNoteRepositorySuite(t *testing.T) {
	suite.Run(t, new(NoteRepositorySuite))
}
