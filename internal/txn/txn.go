// Package txn publishes pending tree state as atomic transactions. A
// transaction is applied once every view it resized has acknowledged its
// configure or the timeout fires, whichever comes first.
package txn

import (
	"log/slog"
	"time"

	"github.com/ItsNotGoodName/x-scroller/internal/anim"
	"github.com/ItsNotGoodName/x-scroller/internal/loop"
	"github.com/ItsNotGoodName/x-scroller/internal/tree"
)

// Renderer lays the scene out from current state.
type Renderer interface {
	// SaveAnimation runs before pending state is captured.
	SaveAnimation()
	// Arrange runs after a transaction is applied and on every animation tick.
	Arrange()
}

type Options struct {
	Timeout time.Duration
	// NoAtomic applies transactions without waiting for clients.
	NoAtomic bool
	// Wait forces every transaction to run into its timeout.
	Wait bool
	// Timings logs how long transactions wait.
	Timings bool
}

func DefaultOptions() Options {
	return Options{
		Timeout: 200 * time.Millisecond,
	}
}

// forcedWait inflates the waiting counter so only the timeout can apply.
const forcedWait = 1000000

type instruction struct {
	txn  *transaction
	node tree.NodeRef

	output    tree.OutputState
	workspace tree.WorkspaceState
	container tree.ContainerState

	serial        uint32
	serverRequest bool
	waiting       bool
}

type transaction struct {
	id           uint64
	instructions []*instruction
	byNode       map[tree.NodeRef]*instruction
	waiting      int
	configures   int
	cancel       loop.Cancel
	committed    time.Time
}

type Engine struct {
	tree     *tree.Tree
	sched    loop.Scheduler
	anim     *anim.Context
	renderer Renderer
	opts     Options

	nextID  uint64
	pending *transaction
	queued  *transaction
	// inflight maps a container to its instruction in the queued transaction.
	inflight map[tree.ContainerID]*instruction
	timeouts int

	// Now is the clock used for timings.
	Now func() time.Time
}

func New(t *tree.Tree, sched loop.Scheduler, a *anim.Context, r Renderer, opts Options) *Engine {
	return &Engine{
		tree:     t,
		sched:    sched,
		anim:     a,
		renderer: r,
		opts:     opts,
		inflight: make(map[tree.ContainerID]*instruction),
		Now:      time.Now,
	}
}

func (e *Engine) SetOptions(opts Options) {
	e.opts = opts
}

func (e *Engine) Options() Options {
	return e.opts
}

// Timeouts returns how many transactions were applied by their timer.
func (e *Engine) Timeouts() int {
	return e.timeouts
}

// CommitDirty captures every dirty node into the pending transaction on
// behalf of the server and queues it when nothing is in flight.
func (e *Engine) CommitDirty() {
	e.commitDirty(true)
}

// CommitDirtyClient is CommitDirty for changes a client already made, which
// need no configure.
func (e *Engine) CommitDirtyClient() {
	e.commitDirty(false)
}

func (e *Engine) commitDirty(server bool) {
	if !e.tree.HasDirty() {
		return
	}
	if e.pending == nil {
		e.pending = e.newTransaction()
	}
	for _, n := range e.tree.TakeDirty() {
		if e.tree.NodeExists(n) {
			e.addNode(e.pending, n, server)
		}
	}
	if e.renderer != nil {
		e.renderer.SaveAnimation()
	}
	e.commitPending()
}

func (e *Engine) newTransaction() *transaction {
	e.nextID++
	return &transaction{
		id:     e.nextID,
		byNode: make(map[tree.NodeRef]*instruction),
	}
}

// addNode snapshots n into txn. A node dirtied again before the commit
// updates its existing instruction.
func (e *Engine) addNode(txn *transaction, n tree.NodeRef, server bool) {
	ins := txn.byNode[n]
	if ins == nil {
		ins = &instruction{txn: txn, node: n, serverRequest: server}
		txn.byNode[n] = ins
		txn.instructions = append(txn.instructions, ins)
		e.tree.Ref(n)
	} else if server {
		ins.serverRequest = true
	}

	switch n.Kind {
	case tree.NodeOutput:
		o := e.tree.Output(n.Output)
		ins.output = o.Pending.Clone()
	case tree.NodeWorkspace:
		ws := e.tree.Workspace(n.Workspace)
		ins.workspace = ws.Pending.Clone()
		ins.workspace.Focused = !e.tree.Focused().Valid() && e.tree.FocusedWorkspace() == ws.ID
	case tree.NodeContainer:
		c := e.tree.Container(n.Container)
		ins.container = c.Pending.Clone()
		ins.container.Focused = e.tree.Focused() == c.ID
		if c.IsView() {
			ins.container.Children = nil
		}
	}
}

func (e *Engine) commitPending() {
	if e.queued != nil || e.pending == nil {
		return
	}
	txn := e.pending
	e.pending = nil
	e.queued = txn
	e.commit(txn)
	e.progress()
}

func (e *Engine) commit(txn *transaction) {
	slog.Debug("Transaction committing", "package", "txn", "id", txn.id, "instructions", len(txn.instructions))
	txn.waiting = 0
	for _, ins := range txn.instructions {
		c := e.view(ins)
		hidden := c != nil && !e.tree.Destroying(ins.node) && !c.View.IsVisible()
		if e.shouldConfigure(ins) {
			st := ins.container
			ins.serial = c.View.Configure(st.ContentX, st.ContentY, st.ContentWidth, st.ContentHeight)
			if !hidden {
				ins.waiting = true
				txn.waiting++
			}
			c.View.SendFrameDone()
		}
		if c != nil && !hidden && !c.View.HasSavedBuffer() {
			c.View.SaveBuffer()
		}
		if ins.node.Kind == tree.NodeContainer {
			e.inflight[ins.node.Container] = ins
		}
	}
	txn.configures = txn.waiting
	if e.opts.Timings {
		txn.committed = e.Now()
	}

	switch {
	case e.opts.NoAtomic:
		txn.waiting = 0
	case e.opts.Wait:
		txn.waiting += forcedWait
	}

	if txn.waiting > 0 {
		txn.cancel = e.sched.Schedule(e.opts.Timeout, func() { e.handleTimeout(txn) })
	}
}

// view returns the view container an instruction is for, nil otherwise.
func (e *Engine) view(ins *instruction) *tree.Container {
	if ins.node.Kind != tree.NodeContainer {
		return nil
	}
	c := e.tree.Container(ins.node.Container)
	if c == nil || !c.IsView() {
		return nil
	}
	return c
}

func (e *Engine) shouldConfigure(ins *instruction) bool {
	c := e.view(ins)
	if c == nil || e.tree.Destroying(ins.node) || !ins.serverRequest {
		return false
	}
	cur, next := c.Current, ins.container
	// Position aware clients see truncated integer coordinates and ignore
	// configures that do not change them.
	if c.View.PositionAware() && (int(cur.ContentX) != int(next.ContentX) || int(cur.ContentY) != int(next.ContentY)) {
		return true
	}
	return cur.ContentWidth != next.ContentWidth || cur.ContentHeight != next.ContentHeight
}

func (e *Engine) handleTimeout(txn *transaction) {
	slog.Debug("Transaction timed out", "package", "txn", "id", txn.id, "waiting", txn.waiting)
	txn.cancel = nil
	txn.waiting = 0
	e.timeouts++
	e.progress()
}

// progress applies the queued transaction once nothing is waiting and
// starts the next one right away.
func (e *Engine) progress() {
	txn := e.queued
	if txn == nil || txn.waiting > 0 {
		return
	}
	e.apply(txn)
	e.arrange()
	e.destroy(txn)
	e.queued = nil
	if e.pending == nil {
		return
	}
	e.commitPending()
}

func (e *Engine) arrange() {
	if e.renderer == nil {
		return
	}
	if e.anim == nil {
		e.renderer.Arrange()
		return
	}
	e.anim.Start(nil, e.renderer.Arrange, nil)
}

func (e *Engine) apply(txn *transaction) {
	slog.Debug("Applying transaction", "package", "txn", "id", txn.id)
	if e.opts.Timings {
		ms := float64(e.Now().Sub(txn.committed).Microseconds()) / 1000
		slog.Debug("Transaction waited", "package", "txn", "id", txn.id, "ms", ms, "frames", ms/(1000.0/60))
	}

	for _, ins := range txn.instructions {
		switch ins.node.Kind {
		case tree.NodeOutput:
			if o := e.tree.Output(ins.node.Output); o != nil {
				o.Current = ins.output
			}
		case tree.NodeWorkspace:
			if ws := e.tree.Workspace(ins.node.Workspace); ws != nil {
				ws.Current = ins.workspace
			}
		case tree.NodeContainer:
			c := e.tree.Container(ins.node.Container)
			if c == nil {
				continue
			}
			c.Current = ins.container
			if c.IsView() {
				if c.View.HasSavedBuffer() && (!e.tree.Destroying(ins.node) || e.tree.Refs(ins.node) == 1) {
					c.View.RemoveSavedBuffer()
				}
				c.View.CenterAndClip(c.Current.ContentWidth, c.Current.ContentHeight)
			}
			if e.inflight[c.ID] == ins {
				delete(e.inflight, c.ID)
			}
		}
	}
}

// destroy releases the node references of txn, finishing deferred destroys.
func (e *Engine) destroy(txn *transaction) {
	if txn.cancel != nil {
		txn.cancel()
		txn.cancel = nil
	}
	for _, ins := range txn.instructions {
		if ins.node.Kind == tree.NodeContainer && e.inflight[ins.node.Container] == ins {
			delete(e.inflight, ins.node.Container)
		}
		e.tree.Unref(ins.node)
	}
	txn.instructions = nil
	txn.byNode = nil
}

func (e *Engine) ready(ins *instruction) {
	txn := ins.txn
	if e.opts.Timings {
		ms := float64(e.Now().Sub(txn.committed).Microseconds()) / 1000
		slog.Debug("Transaction instruction ready", "package", "txn", "id", txn.id,
			"ready", txn.configures-txn.waiting+1, "configures", txn.configures, "ms", ms)
	}

	// A timed out transaction has nothing left to wait for.
	if ins.waiting && txn.waiting > 0 {
		txn.waiting--
		if txn.waiting == 0 {
			slog.Debug("Transaction is ready", "package", "txn", "id", txn.id)
			if txn.cancel != nil {
				txn.cancel()
				txn.cancel = nil
			}
		}
	}
	ins.waiting = false
	if ins.node.Kind == tree.NodeContainer && e.inflight[ins.node.Container] == ins {
		delete(e.inflight, ins.node.Container)
	}
	e.progress()
}

// NotifyBySerial marks the view of c ready when serial acknowledges its
// in-flight configure.
func (e *Engine) NotifyBySerial(c tree.ContainerID, serial uint32) bool {
	ins := e.inflight[c]
	if ins == nil || ins.serial != serial {
		return false
	}
	e.ready(ins)
	return true
}

// NotifyByGeometry marks the view of c ready when the client reports exactly
// the geometry its in-flight configure asked for.
func (e *Engine) NotifyByGeometry(c tree.ContainerID, x, y, width, height float64) bool {
	ins := e.inflight[c]
	if ins == nil {
		return false
	}
	st := ins.container
	if int(st.ContentX) != int(x) || int(st.ContentY) != int(y) || st.ContentWidth != width || st.ContentHeight != height {
		return false
	}
	e.ready(ins)
	return true
}
