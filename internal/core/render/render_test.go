package render

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{CommandName: "taysr", Now: testNow}
}

func due(day int) time.Time {
	return time.Date(2025, 6, day, 18, 0, 0, 0, time.UTC)
}

func taskIDs(blocks []Block) []string {
	var ids []string
	for _, b := range blocks {
		if b.Kind != KindText || !strings.HasPrefix(b.Content, "**T-") {
			continue
		}
		inner := strings.TrimPrefix(b.Content, "**")
		ids = append(ids, inner[:strings.Index(inner, "**")])
	}
	return ids
}

func TestRender_EmptyList(t *testing.T) {
	blocks := Render(nil, testOptions())

	// Header, large separator, empty notice, footer separator, footer.
	if len(blocks) != 5 {
		t.Fatalf("expected 5 blocks, got %d", len(blocks))
	}
	if !strings.Contains(blocks[0].Content, "Taysr Tasks") {
		t.Errorf("first block should be the header, got %q", blocks[0].Content)
	}
	if !strings.Contains(blocks[2].Content, "No open tasks") {
		t.Errorf("expected empty notice, got %q", blocks[2].Content)
	}
	if !strings.Contains(blocks[2].Content, "/taysr create") {
		t.Errorf("empty notice should reference the create command, got %q", blocks[2].Content)
	}
	if !strings.Contains(blocks[4].Content, "Last updated") {
		t.Errorf("expected footer, got %q", blocks[4].Content)
	}
}

func TestRender_Deterministic(t *testing.T) {
	tasks := []Task{
		{TaskID: "T-001", Title: "Design bout flyer", DueAt: due(3)},
		{TaskID: "T-002", Title: "Book venue", AssigneeID: "u1", DueAt: due(5)},
	}

	first := Render(tasks, testOptions())
	second := Render(tasks, testOptions())

	if !reflect.DeepEqual(first, second) {
		t.Error("render is not deterministic for identical input")
	}
}

func TestRender_SortContract(t *testing.T) {
	tasks := []Task{
		{TaskID: "T-003", Title: "c", DueAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{TaskID: "T-001", Title: "a", DueAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{TaskID: "T-002", Title: "b", DueAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	got := taskIDs(Render(tasks, testOptions()))
	want := []string{"T-001", "T-002", "T-003"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rendered order = %v, want %v", got, want)
	}
}

func TestRender_SortTieBreakByTaskID(t *testing.T) {
	same := due(10)
	tasks := []Task{
		{TaskID: "T-1000", Title: "later id", DueAt: same},
		{TaskID: "T-999", Title: "earlier id", DueAt: same},
		{TaskID: "T-002", Title: "earliest id", DueAt: same},
	}

	got := taskIDs(Render(tasks, testOptions()))
	want := []string{"T-002", "T-999", "T-1000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("rendered order = %v, want %v", got, want)
	}
}

func TestRender_UnassignedLabel(t *testing.T) {
	blocks := Render([]Task{{TaskID: "T-001", Title: "t", DueAt: due(2)}}, testOptions())

	var taskContent string
	for _, b := range blocks {
		if strings.HasPrefix(b.Content, "**T-001**") {
			taskContent = b.Content
		}
	}
	if !strings.Contains(taskContent, "Unassigned") {
		t.Errorf("task without assignee should render Unassigned, got %q", taskContent)
	}
}

func TestRender_AssigneeMention(t *testing.T) {
	blocks := Render([]Task{{TaskID: "T-001", Title: "t", AssigneeID: "12345", DueAt: due(2)}}, testOptions())

	var taskContent string
	for _, b := range blocks {
		if strings.HasPrefix(b.Content, "**T-001**") {
			taskContent = b.Content
		}
	}
	if !strings.Contains(taskContent, "<@12345>") {
		t.Errorf("assigned task should render a mention, got %q", taskContent)
	}
}

func TestRender_TruncatesAtBlockCap(t *testing.T) {
	var tasks []Task
	for i := 1; i <= 50; i++ {
		tasks = append(tasks, Task{
			TaskID: "T-" + strings.Repeat("0", 2) + string(rune('0'+i%10)),
			Title:  "task",
			DueAt:  due(1).Add(time.Duration(i) * time.Hour),
		})
	}

	blocks := Render(tasks, testOptions())

	var truncated bool
	for _, b := range blocks {
		if strings.Contains(b.Content, "Some tasks are hidden") {
			truncated = true
		}
	}
	if !truncated {
		t.Error("expected truncation notice with 50 tasks")
	}
	// Cap plus truncation notice, footer separator, footer.
	if len(blocks) > DefaultMaxBlocks+3 {
		t.Errorf("block count %d exceeds cap %d plus trailer", len(blocks), DefaultMaxBlocks)
	}
	if !strings.Contains(blocks[len(blocks)-1].Content, "Last updated") {
		t.Error("footer must still be emitted after truncation")
	}
}

func TestRender_NoTruncationUnderCap(t *testing.T) {
	tasks := []Task{
		{TaskID: "T-001", Title: "a", DueAt: due(1)},
		{TaskID: "T-002", Title: "b", DueAt: due(2)},
	}

	for _, b := range Render(tasks, testOptions()) {
		if strings.Contains(b.Content, "Some tasks are hidden") {
			t.Error("unexpected truncation notice for a short list")
		}
	}
}

func TestRender_FooterTimestamp(t *testing.T) {
	blocks := Render(nil, testOptions())
	footer := blocks[len(blocks)-1]
	if !strings.Contains(footer.Content, "<t:1748779200:R>") {
		t.Errorf("footer should carry the render timestamp, got %q", footer.Content)
	}
}
