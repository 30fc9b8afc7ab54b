package appstate

import (
	"sync"

	"github.com/anazmuhdd/jarvis-acsia/internal/identity"
	"github.com/anazmuhdd/jarvis-acsia/internal/newscache"
	"github.com/anazmuhdd/jarvis-acsia/internal/tasks"
)

// Store holds the session state shared between the view and the sync
// components: the profile, the current feed, and the task collection.
// Every accessor copies, so readers never alias internal slices. One Store
// per session; tests build a fresh one per case.
type Store struct {
	mu        sync.RWMutex
	profile   identity.Profile
	articles  []newscache.Article
	topics    []string
	fromCache bool
	todos     []tasks.Item
}

func New(profile identity.Profile) *Store {
	return &Store{profile: profile}
}

func (s *Store) Profile() identity.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Store) SetProfile(p identity.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
}

// SetFeed replaces the articles and topics shown on the dashboard.
// fromCache records whether this feed came from the cache or a live fetch.
func (s *Store) SetFeed(articles []newscache.Article, topics []string, fromCache bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = append([]newscache.Article(nil), articles...)
	s.topics = append([]string(nil), topics...)
	s.fromCache = fromCache
}

func (s *Store) Feed() (articles []newscache.Article, topics []string, fromCache bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]newscache.Article(nil), s.articles...),
		append([]string(nil), s.topics...),
		s.fromCache
}

func (s *Store) ClearFeed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles = nil
	s.topics = nil
	s.fromCache = false
}

func (s *Store) SetTodos(items []tasks.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append([]tasks.Item(nil), items...)
}

func (s *Store) Todos() []tasks.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]tasks.Item(nil), s.todos...)
}

// Todo looks up one item by ID.
func (s *Store) Todo(id string) (tasks.Item, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.todos {
		if it.ID == id {
			return it, true
		}
	}
	return tasks.Item{}, false
}

// SetTodoDone flips one item's done flag. Part of the mutator's state
// surface.
func (s *Store) SetTodoDone(id string, done bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			s.todos[i].Done = done
			return true
		}
	}
	return false
}

func (s *Store) PrependTodo(item tasks.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append([]tasks.Item{item}, s.todos...)
}

func (s *Store) RemoveTodo(id string) (tasks.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == id {
			it := s.todos[i]
			s.todos = append(s.todos[:i], s.todos[i+1:]...)
			return it, true
		}
	}
	return tasks.Item{}, false
}

func (s *Store) AppendTodo(item tasks.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append(s.todos, item)
}

var _ tasks.TodoState = (*Store)(nil)
