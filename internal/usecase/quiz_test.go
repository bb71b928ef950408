package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
)

func TestQuizCreateRequiresTitle(t *testing.T) {
	svc := NewQuizService(newStubQuizRepo())

	if _, err := svc.Create(context.Background(), "", "desc", 600, nil); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestQuizAttemptValidatesQuiz(t *testing.T) {
	svc := NewQuizService(newStubQuizRepo())

	if _, err := svc.Attempt(context.Background(), "acc-1", "missing", 80); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestQuizAttemptAllowsRepeats(t *testing.T) {
	repo := newStubQuizRepo(&domain.Quiz{ID: "quiz-1", Title: "Checkpoint"})
	svc := NewQuizService(repo)
	ctx := context.Background()

	if _, err := svc.Attempt(ctx, "acc-1", "quiz-1", 40); err != nil {
		t.Fatalf("first attempt failed: %v", err)
	}
	if _, err := svc.Attempt(ctx, "acc-1", "quiz-1", 90); err != nil {
		t.Fatalf("repeat attempt failed: %v", err)
	}

	attempts, err := svc.ListAttempts(ctx, "acc-1")
	if err != nil {
		t.Fatalf("list attempts failed: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
}

func TestQuizUpdatePartial(t *testing.T) {
	repo := newStubQuizRepo(&domain.Quiz{ID: "quiz-1", Title: "Checkpoint", Description: "Basics", TimerSeconds: 300})
	svc := NewQuizService(repo)

	title := "Final Checkpoint"
	timer := 600
	quiz, err := svc.Update(context.Background(), "quiz-1", QuizUpdate{Title: &title, TimerSeconds: &timer})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if quiz.Title != "Final Checkpoint" || quiz.TimerSeconds != 600 {
		t.Fatalf("expected updated fields, got %+v", quiz)
	}
	if quiz.Description != "Basics" {
		t.Fatalf("expected untouched description, got %q", quiz.Description)
	}
}

func TestQuizUpdateRejectsBlankTitle(t *testing.T) {
	repo := newStubQuizRepo(&domain.Quiz{ID: "quiz-1", Title: "Checkpoint"})
	svc := NewQuizService(repo)

	blank := "   "
	if _, err := svc.Update(context.Background(), "quiz-1", QuizUpdate{Title: &blank}); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestQuizUpdateUnknownID(t *testing.T) {
	svc := NewQuizService(newStubQuizRepo())

	title := "Renamed"
	if _, err := svc.Update(context.Background(), "missing", QuizUpdate{Title: &title}); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestQuizAdminListCountsAttempts(t *testing.T) {
	repo := newStubQuizRepo(
		&domain.Quiz{ID: "quiz-1", Title: "Checkpoint"},
		&domain.Quiz{ID: "quiz-2", Title: "Review"},
	)
	svc := NewQuizService(repo)
	ctx := context.Background()

	for _, account := range []string{"acc-1", "acc-2"} {
		if _, err := svc.Attempt(ctx, account, "quiz-1", 70); err != nil {
			t.Fatalf("attempt failed: %v", err)
		}
	}

	overviews, err := svc.AdminList(ctx)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}

	counts := make(map[string]int64, len(overviews))
	for _, overview := range overviews {
		counts[overview.ID] = overview.AttemptCount
	}
	if counts["quiz-1"] != 2 || counts["quiz-2"] != 0 {
		t.Fatalf("unexpected attempt counts: %v", counts)
	}
}

func TestQuizListQuizAttempts(t *testing.T) {
	repo := newStubQuizRepo(&domain.Quiz{ID: "quiz-1", Title: "Checkpoint"})
	svc := NewQuizService(repo)
	ctx := context.Background()

	if _, err := svc.Attempt(ctx, "acc-1", "quiz-1", 40); err != nil {
		t.Fatalf("attempt failed: %v", err)
	}
	if _, err := svc.Attempt(ctx, "acc-2", "quiz-1", 95); err != nil {
		t.Fatalf("attempt failed: %v", err)
	}

	attempts, err := svc.ListQuizAttempts(ctx, "quiz-1")
	if err != nil {
		t.Fatalf("list quiz attempts failed: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}

	if _, err := svc.ListQuizAttempts(ctx, "missing"); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}

func TestQuizDeleteUnknownID(t *testing.T) {
	svc := NewQuizService(newStubQuizRepo())

	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("expected ErrQuizNotFound, got %v", err)
	}
}
