package filter

import (
	"reflect"
	"testing"

	"github.com/zulandar/cave/internal/models"
)

func node(n int64) *int64 { return &n }

func sampleResponses() []models.Response {
	return []models.Response{
		{ID: 1, Type: models.ChallengeCodegen, NodeID: node(12), MinerHotkey: "hk-b"},
		{ID: 2, Type: models.ChallengeRegression, NodeID: node(3), MinerHotkey: "hk-a"},
		{ID: 3, Type: models.ChallengeCodegen, NodeID: nil, MinerHotkey: "hk-a"},
		{ID: 4, Type: models.ChallengeCodegen, NodeID: node(3), MinerHotkey: "hk-a"},
	}
}

func ids(rs []models.Response) []int64 {
	out := make([]int64, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestResponses_Dimensions(t *testing.T) {
	tests := []struct {
		name string
		sel  ResponseSelection
		want []int64
	}{
		{"all sentinel", ResponseSelection{Type: All, Node: All, Miner: All}, []int64{1, 2, 3, 4}},
		{"empty", ResponseSelection{}, []int64{1, 2, 3, 4}},
		{"type", ResponseSelection{Type: "codegen"}, []int64{1, 3, 4}},
		{"node string compare", ResponseSelection{Node: "3"}, []int64{2, 4}},
		{"node never matches nil", ResponseSelection{Node: "0"}, []int64{}},
		{"miner", ResponseSelection{Miner: "hk-b"}, []int64{1}},
		{"combined", ResponseSelection{Type: "codegen", Node: "3", Miner: "hk-a"}, []int64{4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Responses(sampleResponses(), tt.sel))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResponses_Idempotent(t *testing.T) {
	sel := ResponseSelection{Type: "codegen", Miner: "hk-a"}
	once := Responses(sampleResponses(), sel)
	twice := Responses(once, sel)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("not idempotent: %v then %v", ids(once), ids(twice))
	}
}

func TestResponseSelection_Describe(t *testing.T) {
	if lines := (ResponseSelection{Type: All}).Describe(); len(lines) != 0 {
		t.Errorf("All described as %v", lines)
	}
	got := ResponseSelection{Type: "regression", Node: "3", Miner: "hk-a"}.Describe()
	if len(got) != 3 || got[1] != "Displaying responses from node 3" {
		t.Errorf("Describe() = %v", got)
	}
}

func TestDiscoverResponseOptions(t *testing.T) {
	got := DiscoverResponseOptions(sampleResponses())
	want := ResponseOptions{
		Types:  []string{All, "codegen", "regression"},
		Nodes:  []string{All, "3", "12"},
		Miners: []string{All, "hk-a", "hk-b"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DiscoverResponseOptions() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestDiscoverResponseOptions_Empty(t *testing.T) {
	got := DiscoverResponseOptions(nil)
	if !reflect.DeepEqual(got.Nodes, []string{All}) || !reflect.DeepEqual(got.Types, []string{All}) {
		t.Errorf("got %+v, want only All options", got)
	}
}
