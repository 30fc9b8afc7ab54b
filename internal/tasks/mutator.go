package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyTitle = errors.New("task title is empty")

// Remote is the slice of the remote API the mutator writes through.
type Remote interface {
	Lists(ctx context.Context) ([]List, error)
	Create(ctx context.Context, listID, title string) (Item, error)
	SetStatus(ctx context.Context, listID, taskID string, done bool) error
	Delete(ctx context.Context, listID, taskID string) error
}

// TodoState is the in-memory item collection the mutator edits. The view
// owns it; the mutator is one of its two writers.
type TodoState interface {
	SetTodoDone(id string, done bool) bool
	PrependTodo(Item)
	RemoveTodo(id string) (Item, bool)
	AppendTodo(Item)
}

// ToggleTxn records everything needed to undo a toggle. Rollback reads
// only this record, never surrounding state.
type ToggleTxn struct {
	ItemID   string
	ListID   string
	Previous bool
	Pending  bool
}

// DeleteTxn records the removed item so a failed remote delete can put
// it back.
type DeleteTxn struct {
	Item Item
}

// Mutator applies task edits optimistically: local state first, remote
// confirmation after, rollback from the transaction record on failure.
// A nil remote runs everything in local-only guest mode.
type Mutator struct {
	remote    Remote
	state     TodoState
	listNames []string
	newID     func() string
	now       func() time.Time
	logger    *slog.Logger
}

type MutatorOption func(*Mutator)

// WithListNames sets the canonical display names tried, in order, when
// resolving the create target list.
func WithListNames(names []string) MutatorOption {
	return func(m *Mutator) { m.listNames = names }
}

// WithIDFunc overrides local item ID generation, for tests.
func WithIDFunc(fn func() string) MutatorOption {
	return func(m *Mutator) { m.newID = fn }
}

// WithMutatorClock overrides the time source, for tests.
func WithMutatorClock(now func() time.Time) MutatorOption {
	return func(m *Mutator) { m.now = now }
}

func WithMutatorLogger(l *slog.Logger) MutatorOption {
	return func(m *Mutator) { m.logger = l }
}

func NewMutator(remote Remote, state TodoState, opts ...MutatorOption) *Mutator {
	m := &Mutator{
		remote:    remote,
		state:     state,
		listNames: []string{"Tasks from Teams", "Tasks"},
		newID:     uuid.NewString,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ToggleDone flips the item's done flag in local state and returns the
// transaction record. needsRemote is false for local-only items, which are
// confirmed on the spot.
func (m *Mutator) ToggleDone(item Item) (txn ToggleTxn, needsRemote bool) {
	txn = ToggleTxn{
		ItemID:   item.ID,
		ListID:   item.ListID,
		Previous: item.Done,
		Pending:  !item.Done,
	}
	m.state.SetTodoDone(item.ID, txn.Pending)
	return txn, !item.Local() && m.remote != nil
}

// ConfirmToggle pushes the pending status upstream. On error the caller
// rolls back; nothing else is reported to the user.
func (m *Mutator) ConfirmToggle(ctx context.Context, txn ToggleTxn) error {
	if err := m.remote.SetStatus(ctx, txn.ListID, txn.ItemID, txn.Pending); err != nil {
		m.logger.Warn("toggle not confirmed", "item", txn.ItemID, "err", err)
		return err
	}
	return nil
}

// RollbackToggle restores the pre-mutation flag recorded in the txn.
func (m *Mutator) RollbackToggle(txn ToggleTxn) {
	m.state.SetTodoDone(txn.ItemID, txn.Previous)
}

// Create adds a task. Remote mode resolves the target list and creates
// upstream before touching local state, so a failure leaves nothing to
// undo and the caller keeps the typed title. Guest mode synthesizes a
// local-only item immediately.
func (m *Mutator) Create(ctx context.Context, title string) (Item, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Item{}, ErrEmptyTitle
	}

	if m.remote == nil {
		item := Item{
			ID:        m.newID(),
			ListID:    LocalListID,
			Title:     title,
			CreatedAt: m.now(),
		}
		m.state.PrependTodo(item)
		return item, nil
	}

	lists, err := m.remote.Lists(ctx)
	if err != nil {
		return Item{}, fmt.Errorf("resolving task list: %w", err)
	}
	target, err := resolveList(lists, m.listNames)
	if err != nil {
		return Item{}, err
	}

	created, err := m.remote.Create(ctx, target.ID, title)
	if err != nil {
		return Item{}, err
	}
	created = annotate(created, target)
	m.state.PrependTodo(created)
	return created, nil
}

// Delete removes the item from local state and returns the transaction
// record. needsRemote is false for local-only items.
func (m *Mutator) Delete(item Item) (txn DeleteTxn, needsRemote bool) {
	removed, ok := m.state.RemoveTodo(item.ID)
	if !ok {
		removed = item
	}
	return DeleteTxn{Item: removed}, !item.Local() && m.remote != nil
}

// ConfirmDelete removes the item upstream.
func (m *Mutator) ConfirmDelete(ctx context.Context, txn DeleteTxn) error {
	if err := m.remote.Delete(ctx, txn.Item.ListID, txn.Item.ID); err != nil {
		m.logger.Warn("delete not confirmed", "item", txn.Item.ID, "err", err)
		return err
	}
	return nil
}

// RollbackDelete puts the removed item back. It lands at the end rather
// than its original position; an accepted trade for keeping the txn
// record position-free.
func (m *Mutator) RollbackDelete(txn DeleteTxn) {
	m.state.AppendTodo(txn.Item)
}

// resolveList picks the create target: first list matching a canonical
// name, in name preference order, else the first usable list.
func resolveList(lists []List, names []string) (List, error) {
	usable := make([]List, 0, len(lists))
	for _, l := range lists {
		if !l.Flagged() {
			usable = append(usable, l)
		}
	}
	if len(usable) == 0 {
		return List{}, errors.New("no task lists available")
	}
	for _, name := range names {
		for _, l := range usable {
			if l.DisplayName == name {
				return l, nil
			}
		}
	}
	return usable[0], nil
}
