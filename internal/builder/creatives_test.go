package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/campaign-studio/backend/internal/models"
	"go.uber.org/zap"
)

// fakeTextGenerator responds to every request with n creatives, optionally
// failing on a specific call number.
type fakeTextGenerator struct {
	calls   int
	failOn  int // 1-based, 0 means never fail
	prompts []string
	perfs   []*float64
}

func (f *fakeTextGenerator) InvokeText(ctx context.Context, prompt string, schema map[string]any) (json.RawMessage, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.failOn != 0 && f.calls == f.failOn {
		return nil, fmt.Errorf("backend unavailable")
	}

	// Infer the requested count from the prompt ("Create N ...").
	count := 0
	fmt.Sscanf(prompt[strings.Index(prompt, "Create "):], "Create %d", &count)

	items := make([]map[string]any, 0, count)
	for i := 0; i < count; i++ {
		item := map[string]any{
			"content":      fmt.Sprintf("content %d of call %d", i+1, f.calls),
			"variant_name": fmt.Sprintf("Variant %d", i+1),
			"hook":         "hook",
		}
		if len(f.perfs) > i && f.perfs[i] != nil {
			item["estimated_performance"] = *f.perfs[i]
		}
		items = append(items, item)
	}
	return json.Marshal(map[string]any{"creatives": items})
}

func draftWithStrategy() *Draft {
	d := completeBrief()
	d.Strategy = &models.Strategy{
		KeyMessage: "Fresh coffee, zero effort",
		Tone:       "playful",
		CTA:        "Subscribe today",
	}
	return d
}

func TestGenerateAll_FullCategoryTable(t *testing.T) {
	fake := &fakeTextGenerator{}
	gen := NewCreativeGenerator(fake, zap.NewNop())

	got, err := gen.GenerateAll(context.Background(), draftWithStrategy())
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}

	if fake.calls != len(CreativeBatches) {
		t.Errorf("calls = %d, want %d (one per category)", fake.calls, len(CreativeBatches))
	}

	// 3 ad copy + 5 captions + 4 headlines + 3 CTAs
	if len(got) != 15 {
		t.Fatalf("len = %d, want 15", len(got))
	}

	counts := map[string]int{}
	for _, c := range got {
		counts[c.Type]++
		if c.Platform != "universal" {
			t.Errorf("Platform = %q, want universal", c.Platform)
		}
		if c.PerformanceScore != models.DefaultPerformanceScore {
			t.Errorf("PerformanceScore = %d, want default %d", c.PerformanceScore, models.DefaultPerformanceScore)
		}
		if c.Tone != "playful" {
			t.Errorf("Tone = %q, want inherited from strategy", c.Tone)
		}
		if len(c.Hooks) != 1 {
			t.Errorf("Hooks = %v, want single hook", c.Hooks)
		}
	}
	for _, b := range CreativeBatches {
		if counts[b.Type] != b.Count {
			t.Errorf("count[%s] = %d, want %d", b.Type, counts[b.Type], b.Count)
		}
	}
}

func TestGenerateAll_AbortsWholeBatchOnFailure(t *testing.T) {
	fake := &fakeTextGenerator{failOn: 3}
	gen := NewCreativeGenerator(fake, zap.NewNop())

	got, err := gen.GenerateAll(context.Background(), draftWithStrategy())
	if err == nil {
		t.Fatal("expected error")
	}
	if got != nil {
		t.Errorf("partial results returned on failure: %v", got)
	}
}

func TestGenerateAll_ExplicitPerformanceKept(t *testing.T) {
	perf := 92.0
	fake := &fakeTextGenerator{perfs: []*float64{&perf}}
	gen := NewCreativeGenerator(fake, zap.NewNop())

	got, err := gen.GenerateAll(context.Background(), draftWithStrategy())
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}
	if got[0].PerformanceScore != 92 {
		t.Errorf("PerformanceScore = %d, want 92", got[0].PerformanceScore)
	}
}

func TestGenerateAll_PerformanceClampedToScale(t *testing.T) {
	over, under := 250.0, -5.0
	fake := &fakeTextGenerator{perfs: []*float64{&over, &under}}
	gen := NewCreativeGenerator(fake, zap.NewNop())

	got, err := gen.GenerateAll(context.Background(), draftWithStrategy())
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}
	if got[0].PerformanceScore != 100 {
		t.Errorf("PerformanceScore = %d, want clamped to 100", got[0].PerformanceScore)
	}
	if got[1].PerformanceScore != 0 {
		t.Errorf("PerformanceScore = %d, want clamped to 0", got[1].PerformanceScore)
	}
	if got[2].PerformanceScore != models.DefaultPerformanceScore {
		t.Errorf("PerformanceScore = %d, want default when unreported", got[2].PerformanceScore)
	}
}

func TestRegenerateType_OnlyReplacesThatType(t *testing.T) {
	fake := &fakeTextGenerator{}
	gen := NewCreativeGenerator(fake, zap.NewNop())
	d := draftWithStrategy()

	first, err := gen.GenerateAll(context.Background(), d)
	if err != nil {
		t.Fatalf("GenerateAll: %v", err)
	}
	d.Creatives = first

	got, err := gen.RegenerateType(context.Background(), d, models.CreativeTypeCaption)
	if err != nil {
		t.Fatalf("RegenerateType: %v", err)
	}
	if len(got) != 15 {
		t.Fatalf("len = %d, want 15", len(got))
	}

	// entries of every other type carried over byte for byte
	for _, c := range got {
		if c.Type == models.CreativeTypeCaption {
			if !strings.Contains(c.Content, "call 5") {
				t.Errorf("caption %q not regenerated", c.Content)
			}
			continue
		}
		found := false
		for _, orig := range first {
			if orig.Type == c.Type && orig.Content == c.Content {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("non-caption creative %q was touched", c.Content)
		}
	}
}

func TestRegenerateType_UnknownType(t *testing.T) {
	gen := NewCreativeGenerator(&fakeTextGenerator{}, zap.NewNop())

	if _, err := gen.RegenerateType(context.Background(), draftWithStrategy(), "jingle"); err == nil {
		t.Fatal("expected error for unknown creative type")
	}
}
