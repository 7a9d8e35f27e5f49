package store

import (
	"context"
	"time"

	"github.com/stretchr/testify/suite"

	"scaffold/internal/example/models"
	"scaffold/internal/example/ports"
)

// RepositoryContractSuite checks the behaviour every adapter must share.
// Concrete suites embed it and set newRepo.
type RepositoryContractSuite struct {
	suite.Suite
	ctx     context.Context
	newRepo func() ports.ExampleRepository
	repo    ports.ExampleRepository
}

func (s *RepositoryContractSuite) SetupTest() {
	s.ctx = context.Background()
	s.repo = s.newRepo()
}

func (s *RepositoryContractSuite) example(id, name string, createdAt time.Time) *models.Example {
	e, err := models.NewExample(id, name, createdAt)
	s.Require().NoError(err)
	return e
}

var base = time.Date(2026, 2, 1, 9, 0, 0, 123456000, time.UTC)

func (s *RepositoryContractSuite) TestFindByID() {
	s.Run("absent id is not an error", func() {
		found, err := s.repo.FindByID(s.ctx, "missing")
		s.Require().NoError(err)
		s.Nil(found)
	})

	s.Run("returns the saved example", func() {
		_, err := s.repo.Save(s.ctx, s.example("A", "Widget", base))
		s.Require().NoError(err)

		found, err := s.repo.FindByID(s.ctx, "A")
		s.Require().NoError(err)
		s.Require().NotNil(found)
		s.Equal("A", found.ID())
		s.Equal("Widget", found.Name())
		s.True(base.Equal(found.CreatedAt()))
		s.Zero(found.PendingEvents(), "loaded entities carry no events")
	})
}

func (s *RepositoryContractSuite) TestSaveUpserts() {
	s.Run("saving an existing id overwrites instead of duplicating", func() {
		first := s.example("A", "Widget", base)
		saved, err := s.repo.Save(s.ctx, first)
		s.Require().NoError(err)
		s.Equal("Widget", saved.Name())

		second := s.example("A", "Gadget", base.Add(time.Hour))
		saved, err = s.repo.Save(s.ctx, second)
		s.Require().NoError(err)
		s.Equal("Gadget", saved.Name())
		s.True(base.Equal(saved.CreatedAt()), "creation time of the first save is kept")

		all, err := s.repo.FindAll(s.ctx)
		s.Require().NoError(err)
		s.Len(all, 1)
		s.Equal("Gadget", all[0].Name())
	})

	s.Run("stored example does not alias the caller's entity", func() {
		e := s.example("B", "Widget", base)
		_, err := s.repo.Save(s.ctx, e)
		s.Require().NoError(err)

		s.Require().NoError(e.Rename("Changed locally"))
		found, err := s.repo.FindByID(s.ctx, "B")
		s.Require().NoError(err)
		s.Equal("Widget", found.Name())
	})
}

func (s *RepositoryContractSuite) TestDelete() {
	s.Run("removes the example", func() {
		_, err := s.repo.Save(s.ctx, s.example("A", "Widget", base))
		s.Require().NoError(err)

		s.Require().NoError(s.repo.Delete(s.ctx, "A"))
		found, err := s.repo.FindByID(s.ctx, "A")
		s.Require().NoError(err)
		s.Nil(found)
	})

	s.Run("deleting an absent id is not an error", func() {
		s.NoError(s.repo.Delete(s.ctx, "never-saved"))
		s.NoError(s.repo.Delete(s.ctx, "never-saved"))
	})
}

func (s *RepositoryContractSuite) TestFindAll() {
	s.Run("empty repository", func() {
		all, err := s.repo.FindAll(s.ctx)
		s.Require().NoError(err)
		s.Empty(all)
	})

	s.Run("orders by creation time then id", func() {
		for _, e := range []*models.Example{
			s.example("c", "third", base.Add(2*time.Minute)),
			s.example("b", "second", base),
			s.example("a", "first", base),
		} {
			_, err := s.repo.Save(s.ctx, e)
			s.Require().NoError(err)
		}

		all, err := s.repo.FindAll(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(all, 3)
		s.Equal([]string{"a", "b", "c"}, []string{all[0].ID(), all[1].ID(), all[2].ID()})
	})

	s.Run("each call reads current state", func() {
		before, err := s.repo.FindAll(s.ctx)
		s.Require().NoError(err)

		s.Require().NoError(s.repo.Delete(s.ctx, "a"))
		after, err := s.repo.FindAll(s.ctx)
		s.Require().NoError(err)
		s.Len(after, len(before)-1)
	})
}
