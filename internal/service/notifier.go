package service

// Notifier is told about every successful mutation so collaborators can
// push refresh hints or emit audit events. Implementations must not block;
// mutation flows do not wait on delivery.
type Notifier interface {
	LedgerMutated(table, action string, rows int)
}

type notifiers []Notifier

func (ns notifiers) mutated(table, action string, rows int) {
	for _, n := range ns {
		n.LedgerMutated(table, action, rows)
	}
}
