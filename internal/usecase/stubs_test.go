package usecase

import (
	"context"
	"errors"

	"github.com/rumonkh0/quizbackend/internal/core/domain"
	"github.com/rumonkh0/quizbackend/internal/repository"
)

type stubAccountRepo struct {
	accounts map[string]*domain.Account
	saveErr  error
	saves    int
}

func newStubAccountRepo(accounts ...*domain.Account) *stubAccountRepo {
	repo := &stubAccountRepo{accounts: make(map[string]*domain.Account)}
	for _, account := range accounts {
		repo.accounts[account.ID] = account
	}
	return repo
}

func (r *stubAccountRepo) Create(_ context.Context, account domain.Account) error {
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return &repository.DuplicateKeyError{Constraint: "accounts_email_key"}
		}
		if existing.Username == account.Username {
			return &repository.DuplicateKeyError{Constraint: "accounts_username_key"}
		}
	}
	copied := account
	r.accounts[account.ID] = &copied
	return nil
}

func (r *stubAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	if account, ok := r.accounts[id]; ok {
		copied := *account
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubAccountRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, account := range r.accounts {
		if account.Username == username {
			copied := *account
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *stubAccountRepo) Save(_ context.Context, account domain.Account) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	if _, ok := r.accounts[account.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := account
	r.accounts[account.ID] = &copied
	r.saves++
	return nil
}

type stubTopicRepo struct {
	topics      map[string]*domain.Topic
	moduleCount int64
}

func newStubTopicRepo(topics ...*domain.Topic) *stubTopicRepo {
	repo := &stubTopicRepo{topics: make(map[string]*domain.Topic)}
	for _, topic := range topics {
		repo.topics[topic.ID] = topic
	}
	return repo
}

func (r *stubTopicRepo) Create(_ context.Context, topic domain.Topic) error {
	for _, existing := range r.topics {
		if existing.Name == topic.Name {
			return &repository.DuplicateKeyError{Constraint: "topics_name_key"}
		}
	}
	copied := topic
	r.topics[topic.ID] = &copied
	return nil
}

func (r *stubTopicRepo) GetByID(_ context.Context, id string) (*domain.Topic, error) {
	if topic, ok := r.topics[id]; ok {
		copied := *topic
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubTopicRepo) List(_ context.Context) ([]domain.Topic, error) {
	out := make([]domain.Topic, 0, len(r.topics))
	for _, topic := range r.topics {
		out = append(out, *topic)
	}
	return out, nil
}

func (r *stubTopicRepo) Update(_ context.Context, topic domain.Topic) error {
	if _, ok := r.topics[topic.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := topic
	r.topics[topic.ID] = &copied
	return nil
}

func (r *stubTopicRepo) DeleteCascade(_ context.Context, id string) (int64, error) {
	if _, ok := r.topics[id]; !ok {
		return 0, repository.ErrNotFound
	}
	delete(r.topics, id)
	return r.moduleCount, nil
}

type stubModuleRepo struct {
	modules map[string]*domain.Module
}

func newStubModuleRepo(modules ...*domain.Module) *stubModuleRepo {
	repo := &stubModuleRepo{modules: make(map[string]*domain.Module)}
	for _, module := range modules {
		repo.modules[module.ID] = module
	}
	return repo
}

func (r *stubModuleRepo) Create(_ context.Context, module domain.Module) error {
	copied := module
	r.modules[module.ID] = &copied
	return nil
}

func (r *stubModuleRepo) GetByID(_ context.Context, id string) (*domain.Module, error) {
	if module, ok := r.modules[id]; ok {
		copied := *module
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubModuleRepo) ListByTopic(_ context.Context, topicID string) ([]domain.Module, error) {
	out := make([]domain.Module, 0)
	for _, module := range r.modules {
		if module.TopicID == topicID {
			out = append(out, *module)
		}
	}
	return out, nil
}

func (r *stubModuleRepo) Update(_ context.Context, module domain.Module) error {
	if _, ok := r.modules[module.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := module
	r.modules[module.ID] = &copied
	return nil
}

func (r *stubModuleRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.modules[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.modules, id)
	return nil
}

type stubQuizRepo struct {
	quizzes   map[string]*domain.Quiz
	attempts  []domain.QuizAttempt
	listErr   error
	createErr error
}

func newStubQuizRepo(quizzes ...*domain.Quiz) *stubQuizRepo {
	repo := &stubQuizRepo{quizzes: make(map[string]*domain.Quiz)}
	for _, quiz := range quizzes {
		repo.quizzes[quiz.ID] = quiz
	}
	return repo
}

func (r *stubQuizRepo) Create(_ context.Context, quiz domain.Quiz) error {
	if r.createErr != nil {
		return r.createErr
	}
	copied := quiz
	r.quizzes[quiz.ID] = &copied
	return nil
}

func (r *stubQuizRepo) GetByID(_ context.Context, id string) (*domain.Quiz, error) {
	if quiz, ok := r.quizzes[id]; ok {
		copied := *quiz
		return &copied, nil
	}
	return nil, repository.ErrNotFound
}

func (r *stubQuizRepo) List(_ context.Context) ([]domain.Quiz, error) {
	out := make([]domain.Quiz, 0, len(r.quizzes))
	for _, quiz := range r.quizzes {
		out = append(out, *quiz)
	}
	return out, nil
}

func (r *stubQuizRepo) ListWithAttemptCounts(_ context.Context) ([]domain.QuizOverview, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := make([]domain.QuizOverview, 0, len(r.quizzes))
	for _, quiz := range r.quizzes {
		overview := domain.QuizOverview{Quiz: *quiz}
		for _, attempt := range r.attempts {
			if attempt.QuizID == quiz.ID {
				overview.AttemptCount++
			}
		}
		out = append(out, overview)
	}
	return out, nil
}

func (r *stubQuizRepo) Update(_ context.Context, quiz domain.Quiz) error {
	if _, ok := r.quizzes[quiz.ID]; !ok {
		return repository.ErrNotFound
	}
	copied := quiz
	r.quizzes[quiz.ID] = &copied
	return nil
}

func (r *stubQuizRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.quizzes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.quizzes, id)
	return nil
}

func (r *stubQuizRepo) CreateAttempt(_ context.Context, attempt domain.QuizAttempt) error {
	r.attempts = append(r.attempts, attempt)
	return nil
}

func (r *stubQuizRepo) AttemptedQuizIDs(_ context.Context, accountID string) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	seen := make(map[string]bool)
	var ids []string
	for _, attempt := range r.attempts {
		if attempt.AccountID == accountID && !seen[attempt.QuizID] {
			seen[attempt.QuizID] = true
			ids = append(ids, attempt.QuizID)
		}
	}
	return ids, nil
}

func (r *stubQuizRepo) ListAttemptsByAccount(_ context.Context, accountID string) ([]domain.QuizAttempt, error) {
	var out []domain.QuizAttempt
	for _, attempt := range r.attempts {
		if attempt.AccountID == accountID {
			out = append(out, attempt)
		}
	}
	return out, nil
}

func (r *stubQuizRepo) ListAttemptsByQuiz(_ context.Context, quizID string) ([]domain.QuizAttempt, error) {
	var out []domain.QuizAttempt
	for _, attempt := range r.attempts {
		if attempt.QuizID == quizID {
			out = append(out, attempt)
		}
	}
	return out, nil
}

type stubPublisher struct {
	registered []domain.AccountRegisteredEvent
	locked     []domain.AccountLockedEvent
	logins     []domain.LoginSucceededEvent
	err        error
}

func (p *stubPublisher) PublishAccountRegistered(_ context.Context, event domain.AccountRegisteredEvent) error {
	if p.err != nil {
		return p.err
	}
	p.registered = append(p.registered, event)
	return nil
}

func (p *stubPublisher) PublishAccountLocked(_ context.Context, event domain.AccountLockedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.locked = append(p.locked, event)
	return nil
}

func (p *stubPublisher) PublishLoginSucceeded(_ context.Context, event domain.LoginSucceededEvent) error {
	if p.err != nil {
		return p.err
	}
	p.logins = append(p.logins, event)
	return nil
}

var errStub = errors.New("stub failure")
