package service

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/repository"
)

// memStore is an in-memory stand-in for the database. WithTransaction
// serializes units with a mutex and restores a snapshot when the callback
// fails, mirroring the commit/rollback contract the services rely on.
type memStore struct {
	mu sync.Mutex

	users        map[uint]model.User
	accounts     map[uint]model.Account
	cards        map[uint]model.Card
	transactions map[uint]model.Transaction
	nextID       uint
}

func newMemStore() *memStore {
	return &memStore{
		users:        map[uint]model.User{},
		accounts:     map[uint]model.Account{},
		cards:        map[uint]model.Card{},
		transactions: map[uint]model.Transaction{},
	}
}

var _ repository.TxManager = (*memStore)(nil)

// WithTransaction runs fn against the live maps under the store mutex. On
// error every map is restored from the snapshot taken at entry.
func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, repos repository.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.clone()
	if err := fn(ctx, s.repos(true)); err != nil {
		s.restore(snapshot)
		return err
	}
	return nil
}

type storeSnapshot struct {
	users        map[uint]model.User
	accounts     map[uint]model.Account
	cards        map[uint]model.Card
	transactions map[uint]model.Transaction
	nextID       uint
}

func (s *memStore) clone() storeSnapshot {
	snap := storeSnapshot{
		users:        make(map[uint]model.User, len(s.users)),
		accounts:     make(map[uint]model.Account, len(s.accounts)),
		cards:        make(map[uint]model.Card, len(s.cards)),
		transactions: make(map[uint]model.Transaction, len(s.transactions)),
		nextID:       s.nextID,
	}
	for id, u := range s.users {
		snap.users[id] = u
	}
	for id, a := range s.accounts {
		snap.accounts[id] = a
	}
	for id, c := range s.cards {
		snap.cards[id] = c
	}
	for id, t := range s.transactions {
		snap.transactions[id] = cloneTransaction(t)
	}
	return snap
}

func (s *memStore) restore(snap storeSnapshot) {
	s.users = snap.users
	s.accounts = snap.accounts
	s.cards = snap.cards
	s.transactions = snap.transactions
	s.nextID = snap.nextID
}

func cloneTransaction(t model.Transaction) model.Transaction {
	if t.FromAccountID != nil {
		v := *t.FromAccountID
		t.FromAccountID = &v
	}
	if t.ToAccountID != nil {
		v := *t.ToAccountID
		t.ToAccountID = &v
	}
	return t
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

// repos builds the repository bundle. Locked repos assume the store mutex is
// already held by WithTransaction; unlocked repos take it per call.
func (s *memStore) repos(locked bool) repository.Repos {
	base := memRepo{store: s, locked: locked}
	return repository.Repos{
		Users:        memUsers{base},
		Accounts:     memAccounts{base},
		Cards:        memCards{base},
		Transactions: memTransactions{base},
	}
}

func (s *memStore) userRepo() repository.UserRepository {
	return memUsers{memRepo{store: s}}
}

func (s *memStore) accountRepo() repository.AccountRepository {
	return memAccounts{memRepo{store: s}}
}

func (s *memStore) cardRepo() repository.CardRepository {
	return memCards{memRepo{store: s}}
}

func (s *memStore) transactionRepo() repository.TransactionRepository {
	return memTransactions{memRepo{store: s}}
}

type memRepo struct {
	store  *memStore
	locked bool
}

func (r memRepo) acquire() func() {
	if r.locked {
		return func() {}
	}
	r.store.mu.Lock()
	return r.store.mu.Unlock
}

// Seed helpers. Only used from test setup, outside any transaction.

func (s *memStore) addUser(email string, role model.Role) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	user := model.User{ID: s.id(), Email: email, PasswordHash: "x", Role: role}
	s.users[user.ID] = user
	return &user
}

func (s *memStore) addAccount(userID uint, number string, balance decimal.Decimal) *model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	account := model.Account{
		ID:            s.id(),
		UserID:        userID,
		AccountNumber: number,
		Balance:       balance,
		Type:          model.AccountTypeCourant,
	}
	s.accounts[account.ID] = account
	return &account
}

func (s *memStore) balance(accountID uint) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[accountID].Balance
}

func (s *memStore) transaction(id uint) model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTransaction(s.transactions[id])
}

func (s *memStore) transactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transactions)
}

// memUsers implements repository.UserRepository.

type memUsers struct{ memRepo }

func (r memUsers) Create(ctx context.Context, user *model.User) error {
	defer r.acquire()()
	for _, existing := range r.store.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	user.ID = r.store.id()
	r.store.users[user.ID] = *user
	return nil
}

func (r memUsers) FindByID(ctx context.Context, id uint) (*model.User, error) {
	defer r.acquire()()
	user, ok := r.store.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (r memUsers) FindByIDWithAccounts(ctx context.Context, id uint) (*model.User, error) {
	defer r.acquire()()
	user, ok := r.store.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for _, account := range r.store.accounts {
		if account.UserID == id {
			user.Accounts = append(user.Accounts, account)
		}
	}
	return &user, nil
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	defer r.acquire()()
	for _, user := range r.store.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memUsers) List(ctx context.Context) ([]model.User, error) {
	defer r.acquire()()
	users := make([]model.User, 0, len(r.store.users))
	for _, user := range r.store.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r memUsers) UpdateRole(ctx context.Context, id uint, role model.Role) error {
	defer r.acquire()()
	user, ok := r.store.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.Role = role
	r.store.users[id] = user
	return nil
}

func (r memUsers) Delete(ctx context.Context, id uint) error {
	defer r.acquire()()
	delete(r.store.users, id)
	return nil
}

func (r memUsers) Count(ctx context.Context) (int64, error) {
	defer r.acquire()()
	return int64(len(r.store.users)), nil
}

// memAccounts implements repository.AccountRepository. The ForUpdate variants
// behave like the plain lookups; exclusivity comes from the store mutex held
// for the whole transaction.

type memAccounts struct{ memRepo }

func (r memAccounts) Create(ctx context.Context, account *model.Account) error {
	defer r.acquire()()
	account.ID = r.store.id()
	r.store.accounts[account.ID] = *account
	return nil
}

func (r memAccounts) FindByID(ctx context.Context, id uint) (*model.Account, error) {
	defer r.acquire()()
	account, ok := r.store.accounts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &account, nil
}

func (r memAccounts) FindByIDForUpdate(ctx context.Context, id uint) (*model.Account, error) {
	return r.FindByID(ctx, id)
}

func (r memAccounts) FindByNumberForUpdate(ctx context.Context, number string) (*model.Account, error) {
	defer r.acquire()()
	for _, account := range r.store.accounts {
		if account.AccountNumber == number {
			account := account
			return &account, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memAccounts) FindByNumberAndUserForUpdate(ctx context.Context, number string, userID uint) (*model.Account, error) {
	defer r.acquire()()
	for _, account := range r.store.accounts {
		if account.AccountNumber == number && account.UserID == userID {
			account := account
			return &account, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memAccounts) FindByUser(ctx context.Context, userID uint) ([]model.Account, error) {
	defer r.acquire()()
	var accounts []model.Account
	for _, account := range r.store.accounts {
		if account.UserID == userID {
			accounts = append(accounts, account)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID > accounts[j].ID })
	return accounts, nil
}

func (r memAccounts) List(ctx context.Context) ([]model.Account, error) {
	defer r.acquire()()
	accounts := make([]model.Account, 0, len(r.store.accounts))
	for _, account := range r.store.accounts {
		accounts = append(accounts, account)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID > accounts[j].ID })
	return accounts, nil
}

func (r memAccounts) UpdateBalance(ctx context.Context, id uint, newBalance decimal.Decimal) error {
	defer r.acquire()()
	account, ok := r.store.accounts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	account.Balance = newBalance
	r.store.accounts[id] = account
	return nil
}

func (r memAccounts) Delete(ctx context.Context, id uint) error {
	defer r.acquire()()
	delete(r.store.accounts, id)
	return nil
}

func (r memAccounts) Count(ctx context.Context) (int64, error) {
	defer r.acquire()()
	return int64(len(r.store.accounts)), nil
}

// memCards implements repository.CardRepository.

type memCards struct{ memRepo }

func (r memCards) Create(ctx context.Context, card *model.Card) error {
	defer r.acquire()()
	card.ID = r.store.id()
	r.store.cards[card.ID] = *card
	return nil
}

func (r memCards) Update(ctx context.Context, card *model.Card) error {
	defer r.acquire()()
	if _, ok := r.store.cards[card.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.store.cards[card.ID] = *card
	return nil
}

func (r memCards) FindByID(ctx context.Context, id uint) (*model.Card, error) {
	defer r.acquire()()
	card, ok := r.store.cards[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &card, nil
}

func (r memCards) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Card, error) {
	defer r.acquire()()
	card, ok := r.store.cards[id]
	if !ok || card.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return &card, nil
}

func (r memCards) FindByUser(ctx context.Context, userID uint) ([]model.Card, error) {
	defer r.acquire()()
	var cards []model.Card
	for _, card := range r.store.cards {
		if card.UserID == userID {
			cards = append(cards, card)
		}
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID > cards[j].ID })
	return cards, nil
}

func (r memCards) List(ctx context.Context) ([]model.Card, error) {
	defer r.acquire()()
	cards := make([]model.Card, 0, len(r.store.cards))
	for _, card := range r.store.cards {
		cards = append(cards, card)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID > cards[j].ID })
	return cards, nil
}

func (r memCards) Delete(ctx context.Context, id uint) error {
	defer r.acquire()()
	delete(r.store.cards, id)
	return nil
}

// memTransactions implements repository.TransactionRepository.

type memTransactions struct{ memRepo }

func (r memTransactions) Create(ctx context.Context, transaction *model.Transaction) error {
	defer r.acquire()()
	transaction.ID = r.store.id()
	if transaction.Status == "" {
		transaction.Status = model.TransactionStatusCompleted
	}
	r.store.transactions[transaction.ID] = cloneTransaction(*transaction)
	return nil
}

func (r memTransactions) FindByID(ctx context.Context, id uint) (*model.Transaction, error) {
	defer r.acquire()()
	transaction, ok := r.store.transactions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	transaction = cloneTransaction(transaction)
	return &transaction, nil
}

func (r memTransactions) FindByIDForUpdate(ctx context.Context, id uint) (*model.Transaction, error) {
	return r.FindByID(ctx, id)
}

func (r memTransactions) ListForAccounts(ctx context.Context, accountIDs []uint, limit, offset int) ([]model.Transaction, error) {
	defer r.acquire()()
	ids := make(map[uint]bool, len(accountIDs))
	for _, id := range accountIDs {
		ids[id] = true
	}
	var transactions []model.Transaction
	for _, transaction := range r.store.transactions {
		if (transaction.FromAccountID != nil && ids[*transaction.FromAccountID]) ||
			(transaction.ToAccountID != nil && ids[*transaction.ToAccountID]) {
			transactions = append(transactions, cloneTransaction(transaction))
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID > transactions[j].ID })
	return page(transactions, limit, offset), nil
}

func (r memTransactions) ListAll(ctx context.Context, limit, offset int) ([]model.Transaction, error) {
	defer r.acquire()()
	transactions := make([]model.Transaction, 0, len(r.store.transactions))
	for _, transaction := range r.store.transactions {
		transactions = append(transactions, cloneTransaction(transaction))
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].ID > transactions[j].ID })
	return page(transactions, limit, offset), nil
}

func (r memTransactions) CountForAccount(ctx context.Context, accountID uint) (int64, error) {
	defer r.acquire()()
	var count int64
	for _, transaction := range r.store.transactions {
		if (transaction.FromAccountID != nil && *transaction.FromAccountID == accountID) ||
			(transaction.ToAccountID != nil && *transaction.ToAccountID == accountID) {
			count++
		}
	}
	return count, nil
}

func (r memTransactions) UpdateStatus(ctx context.Context, id uint, status model.TransactionStatus) error {
	defer r.acquire()()
	transaction, ok := r.store.transactions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	transaction.Status = status
	r.store.transactions[id] = transaction
	return nil
}

func page(transactions []model.Transaction, limit, offset int) []model.Transaction {
	if offset >= len(transactions) {
		return nil
	}
	transactions = transactions[offset:]
	if limit > 0 && limit < len(transactions) {
		transactions = transactions[:limit]
	}
	return transactions
}
