package topology

// Step is one unit of work for the provisioning executor.
type Step struct {
	Name      string   `json:"name" yaml:"name"`
	DependsOn []string `json:"dependsOn,omitempty" yaml:"dependsOn,omitempty"`
}

// Origins exist before the distribution that references them, and asset sync
// needs the distribution for its invalidation.
func provisioningPlan(g *DeploymentGraph) []Step {
	return []Step{
		{Name: g.Storage.LogicalID},
		{Name: g.Compute.LogicalID},
		{Name: g.Distribution.LogicalID, DependsOn: []string{g.Storage.LogicalID, g.Compute.LogicalID}},
		{Name: g.StaticAssetSyncInstruction.LogicalID, DependsOn: []string{g.Storage.LogicalID, g.Distribution.LogicalID}},
	}
}

// Order returns the graph's steps in an order that satisfies every dependency.
func (g *DeploymentGraph) Order() ([]string, error) {
	return OrderSteps(g.Plan)
}

// OrderSteps sorts steps topologically. Ties keep their declaration order so
// the result is deterministic.
func OrderSteps(steps []Step) ([]string, error) {
	index := make(map[string]int, len(steps))
	for i, s := range steps {
		if _, dup := index[s.Name]; dup {
			return nil, &PlanError{Step: s.Name, Reason: "declared more than once"}
		}
		index[s.Name] = i
	}

	indegree := make([]int, len(steps))
	dependents := make([][]int, len(steps))
	for i, s := range steps {
		for _, dep := range s.DependsOn {
			j, ok := index[dep]
			if !ok {
				return nil, &PlanError{Step: s.Name, Reason: "depends on unknown step " + dep}
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	done := make([]bool, len(steps))
	out := make([]string, 0, len(steps))
	for len(out) < len(steps) {
		next := -1
		for i := range steps {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			for i := range steps {
				if !done[i] {
					return nil, &PlanError{Step: steps[i].Name, Reason: "dependency cycle"}
				}
			}
		}
		done[next] = true
		out = append(out, steps[next].Name)
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}
	return out, nil
}
