package search

import (
	"github.com/poiesic/dictcc/core"
)

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(expression string)
	AfterKeyQuery(ids []core.ID)
	AfterExtraQuery(ids []core.ID)
	AfterDocumentRetrieval(docs []*core.Document)
	Finish(docs []*core.Document)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                           {}
func (n *noopMonitor) AfterKeyQuery(_ []core.ID)                {}
func (n *noopMonitor) AfterExtraQuery(_ []core.ID)              {}
func (n *noopMonitor) AfterDocumentRetrieval(_ []*core.Document) {}
func (n *noopMonitor) Finish(_ []*core.Document)                {}

// LogMonitor reports search stages to a logger at debug level.
type LogMonitor struct {
	Logger interface {
		Debug(msg string, args ...any)
	}
}

var _ SearchMonitor = (*LogMonitor)(nil)

func (m *LogMonitor) Start(expression string) {
	m.Logger.Debug("search started", "expression", expression)
}

func (m *LogMonitor) AfterKeyQuery(ids []core.ID) {
	m.Logger.Debug("key query matched", "count", len(ids))
}

func (m *LogMonitor) AfterExtraQuery(ids []core.ID) {
	m.Logger.Debug("annotation query matched", "count", len(ids))
}

func (m *LogMonitor) AfterDocumentRetrieval(docs []*core.Document) {
	m.Logger.Debug("documents retrieved", "count", len(docs))
}

func (m *LogMonitor) Finish(docs []*core.Document) {
	m.Logger.Debug("search finished", "results", len(docs))
}
