package filter

import (
	"strconv"

	"github.com/zulandar/cave/internal/models"
)

// All is the option meaning a response dimension is unset.
const All = "All"

// ResponseSelection is the current filter choice for response views. Each
// field is unset when empty or All.
type ResponseSelection struct {
	Type  string `json:"type,omitempty" form:"type"`
	Node  string `json:"node,omitempty" form:"node"`
	Miner string `json:"miner,omitempty" form:"miner"`
}

func isSet(v string) bool { return v != "" && v != All }

// IsZero reports whether no dimension is set.
func (s ResponseSelection) IsZero() bool {
	return !isSet(s.Type) && !isSet(s.Node) && !isSet(s.Miner)
}

// Predicates returns one predicate per set dimension. Node ids compare as
// decimal strings, and a response without a node never matches a node
// selection.
func (s ResponseSelection) Predicates() []Predicate[models.Response] {
	var preds []Predicate[models.Response]
	if isSet(s.Type) {
		typ := s.Type
		preds = append(preds, func(r models.Response) bool { return string(r.Type) == typ })
	}
	if isSet(s.Node) {
		node := s.Node
		preds = append(preds, func(r models.Response) bool {
			return r.NodeID != nil && strconv.FormatInt(*r.NodeID, 10) == node
		})
	}
	if isSet(s.Miner) {
		miner := s.Miner
		preds = append(preds, func(r models.Response) bool { return r.MinerHotkey == miner })
	}
	return preds
}

// Responses applies the selection to responses.
func Responses(responses []models.Response, s ResponseSelection) []models.Response {
	return Apply(responses, s.Predicates()...)
}

// Describe returns one line per set dimension.
func (s ResponseSelection) Describe() []string {
	var lines []string
	if isSet(s.Type) {
		lines = append(lines, "Displaying responses to "+s.Type+" challenges")
	}
	if isSet(s.Node) {
		lines = append(lines, "Displaying responses from node "+s.Node)
	}
	if isSet(s.Miner) {
		lines = append(lines, "Displaying responses from miner "+s.Miner)
	}
	return lines
}

// ResponseOptions are the selectable values for each response dimension,
// each list starting with All.
type ResponseOptions struct {
	Types  []string `json:"types"`
	Nodes  []string `json:"nodes"`
	Miners []string `json:"miners"`
}

// DiscoverResponseOptions collects sorted distinct options. Node ids sort
// numerically and responses without a node contribute none.
func DiscoverResponseOptions(responses []models.Response) ResponseOptions {
	types := map[string]struct{}{}
	nodes := map[int64]struct{}{}
	miners := map[string]struct{}{}
	for _, r := range responses {
		if r.Type != "" {
			types[string(r.Type)] = struct{}{}
		}
		if r.NodeID != nil {
			nodes[*r.NodeID] = struct{}{}
		}
		miners[r.MinerHotkey] = struct{}{}
	}

	nodeIDs := sortedKeys(nodes)
	nodeOpts := make([]string, 0, len(nodeIDs)+1)
	nodeOpts = append(nodeOpts, All)
	for _, id := range nodeIDs {
		nodeOpts = append(nodeOpts, strconv.FormatInt(id, 10))
	}
	return ResponseOptions{
		Types:  append([]string{All}, sortedKeys(types)...),
		Nodes:  nodeOpts,
		Miners: append([]string{All}, sortedKeys(miners)...),
	}
}
