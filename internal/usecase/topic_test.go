package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
)

func TestTopicCreateRequiresName(t *testing.T) {
	svc := NewTopicService(newStubTopicRepo())

	if _, err := svc.Create(context.Background(), "  ", "desc", nil); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestTopicCreateRejectsDuplicateName(t *testing.T) {
	repo := newStubTopicRepo(&domain.Topic{ID: "top-1", Name: "Algebra"})
	svc := NewTopicService(repo)

	if _, err := svc.Create(context.Background(), "Algebra", "", nil); !errors.Is(err, ErrTopicNameTaken) {
		t.Fatalf("expected ErrTopicNameTaken, got %v", err)
	}
}

func TestTopicUpdatePartial(t *testing.T) {
	repo := newStubTopicRepo(&domain.Topic{ID: "top-1", Name: "Algebra", Description: "old"})
	svc := NewTopicService(repo)

	name := "Linear Algebra"
	updated, err := svc.Update(context.Background(), "top-1", &name, nil)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Linear Algebra" || updated.Description != "old" {
		t.Fatalf("unexpected topic after update: %+v", updated)
	}
}

func TestTopicUpdateUnknownID(t *testing.T) {
	svc := NewTopicService(newStubTopicRepo())

	name := "Anything"
	if _, err := svc.Update(context.Background(), "missing", &name, nil); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
}

func TestTopicDeleteReportsCascadedModules(t *testing.T) {
	repo := newStubTopicRepo(&domain.Topic{ID: "top-1", Name: "Algebra"})
	repo.moduleCount = 4
	svc := NewTopicService(repo)

	deleted, err := svc.Delete(context.Background(), "top-1")
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deleted != 4 {
		t.Fatalf("expected 4 cascaded modules, got %d", deleted)
	}
	if _, err := svc.GetByID(context.Background(), "top-1"); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("expected topic gone, got %v", err)
	}
}

func TestTopicDeleteUnknownID(t *testing.T) {
	svc := NewTopicService(newStubTopicRepo())

	if _, err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrTopicNotFound) {
		t.Fatalf("expected ErrTopicNotFound, got %v", err)
	}
}
