package graph

// Execute runs the whole graph once and returns the aggregate success flag.
//
// The run proceeds in three phases. First, every node's transient state is
// reset. Second, the topological order is computed; if none exists (the
// graph is cyclic), an execution-completed notification fires with false and
// Execute returns false without invoking a single computation. Third, every
// node in the order runs: the environment is attached, the node-executing
// notification fires, and [Node.Execute] pulls inputs and computes. A node
// reporting an error does not stop the loop; failures are isolated per
// node, and the remaining nodes still run.
//
// After the loop, the environment is detached from every node (it is owned
// by the caller for the duration of exactly one run), the
// execution-completed notification fires with the aggregate flag, and that
// flag is returned: true only if no node reported an error.
//
// env is an opaque, caller-owned capability object the engine never
// inspects; node kinds read it via [Node.Env]. Pass nil when no node in the
// graph needs outside capabilities.
//
// Execute runs to completion on the calling goroutine and never suspends:
// there is no cancellation and no timeout, and it must not be re-entered
// concurrently on the same graph. Callers with overlapping execution
// requests (live recomputation on rapid edits) must serialize or coalesce
// them; re-running after any edit is cheap and side-effect-deterministic.
func (g *Graph) Execute(env any) bool {
	for _, n := range g.order {
		n.ResetExecution()
	}

	sorted, err := g.TopologicalSort()
	if err != nil {
		g.listener.ExecutionCompleted(false)
		return false
	}

	success := true
	for _, n := range sorted {
		n.env = env
		g.listener.NodeExecuting(n)
		n.Execute(g)
		if n.hasError {
			success = false
		}
	}
	for _, n := range sorted {
		n.env = nil
	}

	g.listener.ExecutionCompleted(success)
	return success
}
