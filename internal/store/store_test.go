package store

import (
	"errors"
	"testing"

	"gsep-planner/internal/idgen"
	"gsep-planner/internal/models"
)

// checkTree verifies the count mirrors, the id index and the branch
// relation against a full walk of the tree.
func checkTree(t *testing.T, s *Store) {
	t.Helper()
	seen := 0
	expect := func(id int64, kind Kind, pos int) {
		t.Helper()
		seen++
		loc, ok := s.Locate(id)
		if !ok {
			t.Fatalf("%s %d missing from index", kind, id)
		}
		if loc.Kind != kind || loc.Position != pos {
			t.Fatalf("%s %d indexed as %s@%d, want %s@%d", kind, id, loc.Kind, loc.Position, kind, pos)
		}
	}
	for i, p := range s.Projects() {
		expect(p.ID, KindProject, i)
		if p.NumberOfStreets != len(p.Streets) {
			t.Fatalf("project %d numberOfStreets = %d, want %d", p.ID, p.NumberOfStreets, len(p.Streets))
		}
		for j, st := range p.Streets {
			expect(st.ID, KindStreet, j)
			if st.NumberOfMainSegments != len(st.MainSegments) {
				t.Fatalf("street %d numberOfMainSegments = %d, want %d", st.ID, st.NumberOfMainSegments, len(st.MainSegments))
			}
			for k, seg := range st.MainSegments {
				expect(seg.ID, KindSegment, k)
				if seg.NumberOfServices != len(seg.Services) {
					t.Fatalf("segment %d numberOfServices = %d, want %d", seg.ID, seg.NumberOfServices, len(seg.Services))
				}
				for l, svc := range seg.Services {
					expect(svc.ID, KindService, l)
					if loc, _ := s.Locate(svc.ID); loc.SegmentID != seg.ID || loc.ProjectID != p.ID {
						t.Fatalf("service %d owners = %+v", svc.ID, loc)
					}
					if svc.NumberOfMeters != len(svc.Meters) {
						t.Fatalf("service %d numberOfMeters = %d, want %d", svc.ID, svc.NumberOfMeters, len(svc.Meters))
					}
					for m, mt := range svc.Meters {
						expect(mt.ID, KindMeter, m)
					}
				}
			}
		}
	}
	if seen != len(s.index) {
		t.Fatalf("index holds %d entries, tree has %d entities", len(s.index), seen)
	}
	for parent, kids := range s.branches {
		ploc, ok := s.index[parent]
		if !ok {
			t.Fatalf("branch relation keeps removed parent %d", parent)
		}
		for _, kid := range kids {
			kloc, ok := s.index[kid]
			if !ok {
				t.Fatalf("branch relation keeps removed child %d", kid)
			}
			if kloc.segment != ploc.segment {
				t.Fatalf("branch %d not in the segment of parent %d", kid, parent)
			}
		}
	}
}

func newStoreWithProject(t *testing.T) (*Store, *models.Project) {
	t.Helper()
	s := New(idgen.New())
	p := s.CreateProject("Test Project")
	checkTree(t, s)
	return s, p
}

func TestEditorOperationsNeedActiveProject(t *testing.T) {
	s := New(nil)
	if _, err := s.AddStreet(); !errors.Is(err, ErrNoActiveProject) {
		t.Errorf("AddStreet err = %v, want ErrNoActiveProject", err)
	}
	if err := s.RemoveMeter(1); !errors.Is(err, ErrNoActiveProject) {
		t.Errorf("RemoveMeter err = %v, want ErrNoActiveProject", err)
	}
	if err := s.UpdateProject(models.ProjectPatch{}); !errors.Is(err, ErrNoActiveProject) {
		t.Errorf("UpdateProject err = %v, want ErrNoActiveProject", err)
	}
}

func TestUnknownIDIsNotFound(t *testing.T) {
	s, p := newStoreWithProject(t)

	err := s.RemoveStreet(999)
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Kind != KindStreet || nf.ID != 999 {
		t.Fatalf("err = %v, want street 999 not found", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err does not wrap ErrNotFound")
	}
	// a project id is not a street id
	if err := s.RemoveStreet(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("RemoveStreet(project id) err = %v, want not found", err)
	}
}

func TestIDsOfInactiveProjectAreNotFound(t *testing.T) {
	s, first := newStoreWithProject(t)
	streetID := first.Streets[0].ID
	s.CreateProject("Second")

	if err := s.RemoveStreet(streetID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want not found while another project is active", err)
	}
	if err := s.SelectProject(first.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveStreet(streetID); err != nil {
		t.Fatalf("RemoveStreet: %v", err)
	}
	checkTree(t, s)
}

func TestMirrorsFollowEveryMutation(t *testing.T) {
	s, p := newStoreWithProject(t)
	st := p.Streets[0]

	steps := []func() error{
		func() error { _, err := s.AddStreet(); return err },
		func() error { return s.SetSegmentCount(st.ID, 3) },
		func() error { _, err := s.AddService(st.MainSegments[0].ID); return err },
		func() error { _, err := s.AddService(st.MainSegments[0].ID); return err },
		func() error { _, err := s.AddMeter(st.MainSegments[0].Services[1].ID); return err },
		func() error { _, err := s.AddMeter(st.MainSegments[0].Services[1].ID); return err },
		func() error { _, err := s.AddBranchService(st.MainSegments[0].Services[0].ID); return err },
		func() error { return s.RemoveMeter(st.MainSegments[0].Services[2].Meters[0].ID) },
		func() error { _, err := s.AddSegment(st.ID); return err },
		func() error { return s.RemoveSegment(st.MainSegments[1].ID) },
		func() error { return s.RemoveStreet(p.Streets[1].ID) },
		func() error { _, err := s.RemoveService(st.MainSegments[0].Services[0].ID); return err },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		checkTree(t, s)
	}
	if got := len(st.MainSegments); got != 3 {
		t.Errorf("segments = %d, want 3", got)
	}
	if got := len(st.MainSegments[0].Services); got != 1 {
		t.Errorf("services = %d, want 1", got)
	}
}

func TestAddServiceInheritsStreetName(t *testing.T) {
	s, p := newStoreWithProject(t)
	st := p.Streets[0]
	name := "Main Street"
	if err := s.UpdateStreet(st.ID, models.StreetPatch{Name: &name, NumberOfMainSegments: intPtr(1)}); err != nil {
		t.Fatal(err)
	}
	svc, err := s.AddService(st.MainSegments[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if svc.StreetName != name {
		t.Errorf("streetName = %q, want %q", svc.StreetName, name)
	}
	checkTree(t, s)
}

func TestAddBranchInsertsAfterParent(t *testing.T) {
	s, p := newStoreWithProject(t)
	seg := mustSegment(t, s, p.Streets[0].ID)
	a, _ := s.AddService(seg.ID)
	b, _ := s.AddService(seg.ID)

	br1, err := s.AddBranchService(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	br2, _ := s.AddBranchService(a.ID)

	want := []int64{a.ID, br2.ID, br1.ID, b.ID}
	assertServiceOrder(t, seg, want)
	if br1.ParentServiceID == nil || *br1.ParentServiceID != a.ID {
		t.Errorf("parentServiceId = %v, want %d", br1.ParentServiceID, a.ID)
	}
	if got := s.Branches(a.ID); len(got) != 2 || got[0] != br2.ID || got[1] != br1.ID {
		t.Errorf("Branches(a) = %v, want [%d %d]", got, br2.ID, br1.ID)
	}
	checkTree(t, s)
}

func TestRemoveServiceCascadesOneLevel(t *testing.T) {
	s, p := newStoreWithProject(t)
	seg := mustSegment(t, s, p.Streets[0].ID)
	a, _ := s.AddService(seg.ID)
	b, _ := s.AddService(seg.ID)
	aBranch, _ := s.AddBranchService(a.ID)
	grandchild, _ := s.AddBranchService(aBranch.ID)
	bBranch, _ := s.AddBranchService(b.ID)
	if _, err := s.AddMeter(aBranch.ID); err != nil {
		t.Fatal(err)
	}

	removed, err := s.RemoveService(a.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed) != 2 {
		t.Fatalf("removed = %v, want the parent and its branch", removed)
	}
	assertServiceOrder(t, seg, []int64{grandchild.ID, b.ID, bBranch.ID})
	if _, ok := s.Locate(aBranch.Meters[0].ID); ok {
		t.Error("meter of removed branch still indexed")
	}
	if got := s.Branches(aBranch.ID); len(got) != 0 {
		t.Errorf("Branches(removed) = %v, want none", got)
	}
	checkTree(t, s)

	// the orphaned grandchild is removed on its own
	removed, err = s.RemoveService(grandchild.ID)
	if err != nil || len(removed) != 1 {
		t.Fatalf("RemoveService(orphan) = %v, %v", removed, err)
	}
	checkTree(t, s)
}

func TestSetSegmentCountTruncatesDestructively(t *testing.T) {
	s, p := newStoreWithProject(t)
	st := p.Streets[0]
	if err := s.SetSegmentCount(st.ID, 4); err != nil {
		t.Fatal(err)
	}
	tail := st.MainSegments[3]
	svc, _ := s.AddService(tail.ID)
	m, _ := s.AddMeter(svc.ID)
	keep := st.MainSegments[0]

	if err := s.SetSegmentCount(st.ID, 1); err != nil {
		t.Fatal(err)
	}
	if st.NumberOfMainSegments != 1 || st.MainSegments[0] != keep {
		t.Fatalf("segments = %d, want the first one kept", st.NumberOfMainSegments)
	}
	for _, id := range []int64{tail.ID, svc.ID, m.ID} {
		if _, ok := s.Locate(id); ok {
			t.Errorf("entity %d survived truncation", id)
		}
	}
	checkTree(t, s)

	if err := s.SetSegmentCount(st.ID, -3); err != nil {
		t.Fatal(err)
	}
	if st.NumberOfMainSegments != 0 {
		t.Errorf("negative count = %d segments, want 0", st.NumberOfMainSegments)
	}
	checkTree(t, s)
}

func TestDeleteActiveProjectReselectsPrevious(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		k        int
		wantNext int // index into the original list, -1 for none
	}{
		{"middle", 3, 1, 0},
		{"first", 3, 0, 1},
		{"last", 3, 2, 1},
		{"only", 1, 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			var ids []int64
			for i := 0; i < tt.n; i++ {
				ids = append(ids, s.CreateProject("p").ID)
			}
			if err := s.SelectProject(ids[tt.k]); err != nil {
				t.Fatal(err)
			}
			if err := s.DeleteProject(ids[tt.k]); err != nil {
				t.Fatal(err)
			}
			got := s.ActiveProjectID()
			if tt.wantNext < 0 {
				if got != nil {
					t.Errorf("active = %d, want none", *got)
				}
			} else if got == nil || *got != ids[tt.wantNext] {
				t.Errorf("active = %v, want %d", got, ids[tt.wantNext])
			}
			checkTree(t, s)
		})
	}
}

func TestDeleteInactiveProjectKeepsSelection(t *testing.T) {
	s := New(nil)
	a := s.CreateProject("a")
	b := s.CreateProject("b")
	if err := s.DeleteProject(a.ID); err != nil {
		t.Fatal(err)
	}
	if got := s.ActiveProjectID(); got == nil || *got != b.ID {
		t.Errorf("active = %v, want %d", got, b.ID)
	}
	checkTree(t, s)
}

func TestMoveStreetKeepsBothMirrors(t *testing.T) {
	s := New(nil)
	target := s.CreateProject("target")
	src := s.CreateProject("source")
	st := src.Streets[0]
	if err := s.SetSegmentCount(st.ID, 2); err != nil {
		t.Fatal(err)
	}
	parent, _ := s.AddService(st.MainSegments[0].ID)
	branch, _ := s.AddBranchService(parent.ID)

	if err := s.MoveStreet(st.ID, target.ID); err != nil {
		t.Fatal(err)
	}
	if src.NumberOfStreets != 0 || target.NumberOfStreets != 2 {
		t.Fatalf("streets = %d/%d, want 0/2", src.NumberOfStreets, target.NumberOfStreets)
	}
	loc, _ := s.Locate(branch.ID)
	if loc.ProjectID != target.ID {
		t.Errorf("branch owner = %d, want %d", loc.ProjectID, target.ID)
	}
	if got := s.Branches(parent.ID); len(got) != 1 || got[0] != branch.ID {
		t.Errorf("Branches(parent) = %v after move", got)
	}
	checkTree(t, s)
}

func TestReplaceAll(t *testing.T) {
	s, _ := newStoreWithProject(t)
	parent := int64(40)
	orphanParent := int64(7)
	loaded := []*models.Project{{
		ID: 10, ProjectName: "Loaded",
		Streets: []*models.Street{{
			ID: 20,
			MainSegments: []*models.MainSegment{{
				ID: 30,
				Services: []*models.Service{
					{ID: parent},
					{ID: 41, ParentServiceID: &parent, Meters: []*models.Meter{{ID: 50}}},
					{ID: 42, ParentServiceID: &orphanParent},
				},
			}},
		}},
	}}

	s.ReplaceAll(loaded)
	if got := s.ActiveProjectID(); got == nil || *got != 10 {
		t.Fatalf("active = %v, want 10", got)
	}
	if s.UI().CreatingNewProject {
		t.Error("creatingNewProject set after non-empty load")
	}
	if got := s.Branches(parent); len(got) != 1 || got[0] != 41 {
		t.Errorf("Branches(40) = %v, want [41]", got)
	}
	if got := s.Branches(orphanParent); len(got) != 0 {
		t.Errorf("orphan linked: %v", got)
	}
	if next := s.IDs().Next(); next <= 50 {
		t.Errorf("next id = %d, want > 50", next)
	}
	checkTree(t, s)

	s.ReplaceAll(nil)
	if s.ActiveProjectID() != nil || !s.UI().CreatingNewProject {
		t.Error("empty load should clear selection and set creatingNewProject")
	}
	checkTree(t, s)
}

func TestUpdateMeterAndSegment(t *testing.T) {
	s, p := newStoreWithProject(t)
	seg := mustSegment(t, s, p.Streets[0].ID)
	svc, _ := s.AddService(seg.ID)
	m, _ := s.AddMeter(svc.ID)

	if err := s.UpdateMeter(m.ID, models.MeterPatch{UddUsage: models.Val(12.5)}); err != nil {
		t.Fatal(err)
	}
	if m.UddUsage == nil || *m.UddUsage != 12.5 {
		t.Errorf("uddUsage = %v, want 12.5", m.UddUsage)
	}
	status := models.EssentialStatusEssential
	if err := s.UpdateSegment(seg.ID, models.SegmentPatch{EssentialStatus: &status, LengthToBeReplaced: models.Val(100.0)}); err != nil {
		t.Fatal(err)
	}
	if seg.EssentialStatus != status || *seg.LengthToBeReplaced != 100 {
		t.Errorf("segment = %+v", seg)
	}
	if err := s.UpdateMeter(svc.ID, models.MeterPatch{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateMeter(service id) err = %v, want not found", err)
	}
}

func mustSegment(t *testing.T, s *Store, streetID int64) *models.MainSegment {
	t.Helper()
	seg, err := s.AddSegment(streetID)
	if err != nil {
		t.Fatal(err)
	}
	return seg
}

func assertServiceOrder(t *testing.T, seg *models.MainSegment, want []int64) {
	t.Helper()
	if len(seg.Services) != len(want) {
		t.Fatalf("services = %d, want %d", len(seg.Services), len(want))
	}
	for i, svc := range seg.Services {
		if svc.ID != want[i] {
			t.Fatalf("service[%d] = %d, want %d", i, svc.ID, want[i])
		}
	}
}

func intPtr(v int) *int { return &v }

func TestLookupsResolveAgainstActiveProject(t *testing.T) {
	s, p := newStoreWithProject(t)
	seg := mustSegment(t, s, p.Streets[0].ID)
	svc, _ := s.AddService(seg.ID)
	m, _ := s.AddMeter(svc.ID)

	if got, err := s.Street(p.Streets[0].ID); err != nil || got != p.Streets[0] {
		t.Errorf("Street = %v, %v", got, err)
	}
	if got, err := s.Segment(seg.ID); err != nil || got != seg {
		t.Errorf("Segment = %v, %v", got, err)
	}
	if got, err := s.Service(svc.ID); err != nil || got != svc {
		t.Errorf("Service = %v, %v", got, err)
	}
	if got, err := s.Meter(m.ID); err != nil || got != m {
		t.Errorf("Meter = %v, %v", got, err)
	}
	if _, err := s.Meter(svc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Meter(service id) err = %v, want not found", err)
	}

	s.CreateProject("other")
	if _, err := s.Service(svc.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Service in inactive project err = %v, want not found", err)
	}
}
