package txn

import "github.com/ItsNotGoodName/x-scroller/internal/tree"

// Instruction is a read-only view of one node captured by a transaction.
type Instruction struct {
	Node      tree.NodeRef
	Container tree.ContainerState
	Workspace tree.WorkspaceState
	Output    tree.OutputState
	Serial    uint32
	Waiting   bool
}

// Snapshot is a read-only view of a transaction.
type Snapshot struct {
	ID           uint64
	Waiting      int
	Configures   int
	Instructions []Instruction
}

func (txn *transaction) snapshot() Snapshot {
	s := Snapshot{
		ID:           txn.id,
		Waiting:      txn.waiting,
		Configures:   txn.configures,
		Instructions: make([]Instruction, 0, len(txn.instructions)),
	}
	for _, ins := range txn.instructions {
		s.Instructions = append(s.Instructions, Instruction{
			Node:      ins.node,
			Container: ins.container.Clone(),
			Workspace: ins.workspace.Clone(),
			Output:    ins.output.Clone(),
			Serial:    ins.serial,
			Waiting:   ins.waiting,
		})
	}
	return s
}

// Pending returns the transaction collecting changes while another one is in flight.
func (e *Engine) Pending() (Snapshot, bool) {
	if e.pending == nil {
		return Snapshot{}, false
	}
	return e.pending.snapshot(), true
}

// Queued returns the transaction waiting for clients.
func (e *Engine) Queued() (Snapshot, bool) {
	if e.queued == nil {
		return Snapshot{}, false
	}
	return e.queued.snapshot(), true
}
