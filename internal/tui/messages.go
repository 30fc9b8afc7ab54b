package tui

import (
	"github.com/anazmuhdd/jarvis-acsia/internal/feed"
	"github.com/anazmuhdd/jarvis-acsia/internal/tasks"
)

type feedLoadedMsg struct {
	result feed.LoadResult
}

type feedErrMsg struct {
	err error
}

type todosLoadedMsg struct {
	result tasks.Result
}

type todosErrMsg struct {
	err error
}

type suggestionsMsg struct {
	items []string
}

type taskCreatedMsg struct {
	err error
}

type toggleFailedMsg struct {
	txn tasks.ToggleTxn
	err error
}

type deleteFailedMsg struct {
	txn tasks.DeleteTxn
	err error
}

type openErrMsg struct {
	err error
}

type updateAvailableMsg struct {
	version string
}
