package user

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepository хранит пользователей в памяти процесса. Записи лежат в плоском
// виде, чтобы вызывающий код не делил память с хранилищем.
type MemoryRepository struct {
	mu     sync.RWMutex
	items  map[int64]Row
	lastID int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		items: make(map[int64]Row),
	}
}

func (r *MemoryRepository) List(_ context.Context) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]User, 0, len(ids))
	for _, id := range ids {
		users = append(users, FromRow(r.items[id]))
	}

	return users, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id int64) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	u := FromRow(row)
	return &u, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if row, ok := r.findByEmail(email, 0); ok {
		u := FromRow(row)
		return &u, nil
	}

	return nil, ErrNotFound
}

func (r *MemoryRepository) Create(_ context.Context, user *User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.findByEmail(user.Email, 0); ok {
		return 0, ErrEmailExists
	}

	r.lastID++
	row := ToRow(user)
	row.ID = r.lastID
	r.items[row.ID] = row

	return row.ID, nil
}

func (r *MemoryRepository) Update(_ context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[user.ID]; !ok {
		return ErrNotFound
	}

	if _, ok := r.findByEmail(user.Email, user.ID); ok {
		return ErrEmailExists
	}

	r.items[user.ID] = ToRow(user)

	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(r.items, id)

	u := FromRow(row)
	return &u, nil
}

func (r *MemoryRepository) Ping(_ context.Context) error {
	return nil
}

// findByEmail вызывается под r.mu. Запись с id skip пропускается.
// Пустой email ни с чем не конфликтует, как и в частичном индексе users_email_key.
func (r *MemoryRepository) findByEmail(email string, skip int64) (Row, bool) {
	if email == "" {
		return Row{}, false
	}

	for id, row := range r.items {
		if id != skip && row.Email == email {
			return row, true
		}
	}

	return Row{}, false
}
