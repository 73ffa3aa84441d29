package book

import (
	"bytes"
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/xiebiao/bookstore-admin/internal/domain/book"
	"github.com/xiebiao/bookstore-admin/internal/domain/file"
	"github.com/xiebiao/bookstore-admin/internal/domain/genre"
)

var errDBDown = errors.New("database is down")

// memBooks 内存图书仓储
type memBooks struct {
	mu        sync.Mutex
	rows      map[uint]book.Book
	nextID    uint
	failWrite error // 非nil时Create/Update/Delete返回该错误
	failList  error
	deleted   []uint
}

func newMemBooks(seed ...book.Book) *memBooks {
	r := &memBooks{rows: map[uint]book.Book{}, nextID: 1}
	for _, b := range seed {
		r.rows[b.ID] = b
		if b.ID >= r.nextID {
			r.nextID = b.ID + 1
		}
	}
	return r
}

func (r *memBooks) List(ctx context.Context) ([]*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failList != nil {
		return nil, r.failList
	}
	out := make([]*book.Book, 0, len(r.rows))
	for _, b := range r.rows {
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memBooks) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return &b, nil
}

func (r *memBooks) Create(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	b.ID = r.nextID
	r.nextID++
	r.rows[b.ID] = *b
	return nil
}

func (r *memBooks) Update(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	if _, ok := r.rows[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	r.rows[b.ID] = *b
	return nil
}

func (r *memBooks) Delete(ctx context.Context, b *book.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWrite != nil {
		return r.failWrite
	}
	delete(r.rows, b.ID)
	r.deleted = append(r.deleted, b.ID)
	return nil
}

func (r *memBooks) get(id uint) (book.Book, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.rows[id]
	return b, ok
}

func (r *memBooks) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// memGenres 固定分类
type memGenres struct {
	list []*genre.Genre
	err  error
}

func (g memGenres) List(ctx context.Context) ([]*genre.Genre, error) {
	return g.list, g.err
}

func testGenres() memGenres {
	return memGenres{list: []*genre.Genre{
		{ID: 1, Name: "Роман"},
		{ID: 2, Name: "Поэзия"},
		{ID: 3, Name: "Фантастика"},
	}}
}

// mockFiles 文件服务mock
type mockFiles struct {
	mock.Mock
}

func (m *mockFiles) SaveFile(ctx context.Context, upload *file.Upload, allowed []string) (string, error) {
	args := m.Called(ctx, upload, allowed)
	return args.String(0), args.Error(1)
}

func (m *mockFiles) DeleteFile(ctx context.Context, fileName string) error {
	args := m.Called(ctx, fileName)
	return args.Error(0)
}

func upload(name string, size int64) *file.Upload {
	return &file.Upload{Filename: name, Size: size, Content: bytes.NewReader(make([]byte, 8))}
}

func sampleBook(id uint, image string) book.Book {
	return book.Book{
		ID:         id,
		Name:       "Мастер и Маргарита",
		AuthorName: "Михаил Булгаков",
		Image:      image,
		GenreID:    1,
		GenreName:  "Роман",
		Price:      decimal.RequireFromString("450.00"),
	}
}

func validDTO() *BookDTO {
	return &BookDTO{
		Name:       "Евгений Онегин",
		AuthorName: "Александр Пушкин",
		GenreID:    2,
		Price:      320.5,
	}
}

func selected(items []SelectItem) []string {
	var out []string
	for _, it := range items {
		if it.Selected {
			out = append(out, it.Value)
		}
	}
	return out
}

// recordingEvents 记录发布的事件
type recordingEvents struct {
	mu     sync.Mutex
	keys   []string
	events []BookEvent
	err    error
}

func (r *recordingEvents) Publish(ctx context.Context, routingKey string, message interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, routingKey)
	r.events = append(r.events, message.(BookEvent))
	return r.err
}
