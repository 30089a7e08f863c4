package logview

import (
	"testing"

	"github.com/hande-app/logwatch/internal/models"
)

func TestViewStateDefaults(t *testing.T) {
	t.Parallel()

	s := NewViewState(50)
	if s.ActiveTab != TabAudit {
		t.Fatalf("fresh session must open the audit tab, got %q", s.ActiveTab)
	}
	if s.LevelFilter != LevelAll || s.TypeFilter != "all" {
		t.Fatalf("filters must start open: %+v", s)
	}
	for _, tab := range []Tab{TabAudit, TabSystem, TabActivity} {
		if ps := s.Page(tab); ps.Page != 1 || ps.PerPage != 50 {
			t.Fatalf("tab %q page state wrong: %+v", tab, ps)
		}
	}
}

func TestViewStatePageResetsOnFilterChanges(t *testing.T) {
	t.Parallel()

	s := NewViewState(50)
	s.ApplyPage(TabAudit, s.Seq(), models.Pagination{Total: 500, PerPage: 50, CurrentPage: 1, LastPage: 10})
	s.NextPage()
	s.NextPage()
	if got := s.Page(TabAudit).Page; got != 3 {
		t.Fatalf("expected page 3, got %d", got)
	}

	// Any filter or search change forces page 1, regardless of history.
	s.SetSearch("login")
	if got := s.Page(TabAudit).Page; got != 1 {
		t.Fatalf("page after search change must be 1, got %d", got)
	}

	s.NextPage()
	s.SetLevelFilter("error")
	if got := s.Page(TabAudit).Page; got != 1 {
		t.Fatalf("page after level change must be 1, got %d", got)
	}

	s.SwitchTab(TabSystem)
	s.NextPage()
	s.SetTypeFilter("payments")
	if got := s.Page(TabSystem).Page; got != 1 {
		t.Fatalf("page after type change must be 1, got %d", got)
	}

	// Setting the same value again is a no-op and keeps the page.
	s.NextPage()
	s.SetTypeFilter("payments")
	if got := s.Page(TabSystem).Page; got != 2 {
		t.Fatalf("unchanged filter must not reset the page, got %d", got)
	}
}

func TestViewStatePageGuards(t *testing.T) {
	t.Parallel()

	s := NewViewState(50)
	s.PrevPage()
	if got := s.Page(TabAudit).Page; got != 1 {
		t.Fatalf("page must never go below 1, got %d", got)
	}

	s.ApplyPage(TabAudit, s.Seq(), models.Pagination{Total: 100, PerPage: 50, CurrentPage: 1, LastPage: 2})
	s.NextPage()
	s.NextPage()
	s.NextPage()
	if got := s.Page(TabAudit).Page; got != 2 {
		t.Fatalf("page must not pass the reported last page, got %d", got)
	}

	// Without metadata yet, NextPage is optimistic; ApplyPage clamps back.
	s2 := NewViewState(50)
	s2.NextPage()
	s2.NextPage()
	s2.ApplyPage(TabAudit, s2.Seq(), models.Pagination{Total: 10, PerPage: 50, CurrentPage: 1, LastPage: 1})
	if got := s2.Page(TabAudit).Page; got != 1 {
		t.Fatalf("ApplyPage must clamp past-the-end pages, got %d", got)
	}
}

func TestViewStatePerTabIndependence(t *testing.T) {
	t.Parallel()

	s := NewViewState(50)
	s.ApplyPage(TabAudit, s.Seq(), models.Pagination{LastPage: 5})
	s.NextPage()
	s.NextPage()

	s.SwitchTab(TabSystem)
	if got := s.Page(TabSystem).Page; got != 1 {
		t.Fatalf("system tab should start on its own page 1, got %d", got)
	}
	s.ApplyPage(TabSystem, s.Seq(), models.Pagination{LastPage: 4})
	s.NextPage()

	// Switching back finds the audit position untouched.
	s.SwitchTab(TabAudit)
	if got := s.Page(TabAudit).Page; got != 3 {
		t.Fatalf("audit page state not preserved across tab switch, got %d", got)
	}
	if got := s.Page(TabSystem).Page; got != 2 {
		t.Fatalf("system page state lost, got %d", got)
	}
}

func TestViewStateStaleResponseDiscarded(t *testing.T) {
	t.Parallel()

	s := NewViewState(50)
	staleSeq := s.Seq()

	// A filter change lands while the fetch is in flight.
	s.SetSearch("refund")

	if s.ApplyPage(TabAudit, staleSeq, models.Pagination{Total: 999, LastPage: 20}) {
		t.Fatal("stale response must be discarded")
	}
	if got := s.Page(TabAudit).Meta; got.Total != 0 {
		t.Fatalf("stale metadata leaked into state: %+v", got)
	}

	// The re-issued fetch under the new sequence applies.
	if !s.ApplyPage(TabAudit, s.Seq(), models.Pagination{Total: 3, LastPage: 1}) {
		t.Fatal("current response must be applied")
	}
}

func TestViewStateFetchParams(t *testing.T) {
	t.Parallel()

	s := NewViewState(25)
	s.SetSearch("login")
	params := s.FetchParams()
	if params.Tab != TabAudit || params.Search != "login" || params.Type != "" {
		t.Fatalf("audit params wrong: %+v", params)
	}
	if params.Page != 1 || params.PerPage != 25 {
		t.Fatalf("audit paging params wrong: %+v", params)
	}
	if params.Seq != s.Seq() {
		t.Fatalf("params must carry the current sequence")
	}

	// The search term is server-side only for the audit tab.
	s.SwitchTab(TabSystem)
	s.SetTypeFilter("trips")
	params = s.FetchParams()
	if params.Search != "" || params.Type != "trips" {
		t.Fatalf("system params wrong: %+v", params)
	}
}

func TestViewStatePauseResume(t *testing.T) {
	t.Parallel()

	s := NewViewState(50)
	if s.Paused {
		t.Fatal("sessions must start live")
	}
	s.Pause()
	if !s.Paused {
		t.Fatal("Pause must set the flag")
	}
	s.Resume()
	if s.Paused {
		t.Fatal("Resume must clear the flag")
	}
}
