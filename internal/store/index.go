package store

import "gsep-planner/internal/models"

// location is where an entity sits in the tree: its owners at every level
// above it and its position in the owner's list. The pointer at the
// entity's own level refers to the entity itself.
type location struct {
	kind    Kind
	pos     int
	project *models.Project
	street  *models.Street
	segment *models.MainSegment
	service *models.Service
	meter   *models.Meter
}

// Location is the exported view of an index entry.
type Location struct {
	Kind      Kind
	Position  int
	ProjectID int64
	StreetID  int64
	SegmentID int64
	ServiceID int64
}

func (l *location) export() Location {
	out := Location{Kind: l.kind, Position: l.pos}
	if l.project != nil {
		out.ProjectID = l.project.ID
	}
	if l.street != nil {
		out.StreetID = l.street.ID
	}
	if l.segment != nil {
		out.SegmentID = l.segment.ID
	}
	if l.service != nil {
		out.ServiceID = l.service.ID
	}
	return out
}

// indexProject records p and its whole subtree, and returns the largest id
// seen.
func (s *Store) indexProject(p *models.Project, pos int) int64 {
	s.index[p.ID] = &location{kind: KindProject, pos: pos, project: p}
	max := p.ID
	for i, st := range p.Streets {
		if id := s.indexStreet(p, st, i); id > max {
			max = id
		}
	}
	return max
}

func (s *Store) indexStreet(p *models.Project, st *models.Street, pos int) int64 {
	s.index[st.ID] = &location{kind: KindStreet, pos: pos, project: p, street: st}
	max := st.ID
	for i, seg := range st.MainSegments {
		if id := s.indexSegment(p, st, seg, i); id > max {
			max = id
		}
	}
	return max
}

func (s *Store) indexSegment(p *models.Project, st *models.Street, seg *models.MainSegment, pos int) int64 {
	s.index[seg.ID] = &location{kind: KindSegment, pos: pos, project: p, street: st, segment: seg}
	max := seg.ID
	for i, svc := range seg.Services {
		if id := s.indexService(p, st, seg, svc, i); id > max {
			max = id
		}
	}
	s.linkBranches(seg)
	return max
}

func (s *Store) indexService(p *models.Project, st *models.Street, seg *models.MainSegment, svc *models.Service, pos int) int64 {
	s.index[svc.ID] = &location{kind: KindService, pos: pos, project: p, street: st, segment: seg, service: svc}
	max := svc.ID
	for i, m := range svc.Meters {
		s.index[m.ID] = &location{kind: KindMeter, pos: i, project: p, street: st, segment: seg, service: svc, meter: m}
		if m.ID > max {
			max = m.ID
		}
	}
	return max
}

// linkBranches records every service of seg whose parent is a sibling.
// References to a missing parent, or to a service of another segment, are
// orphaned and left out of the relation.
func (s *Store) linkBranches(seg *models.MainSegment) {
	present := make(map[int64]bool, len(seg.Services))
	for _, svc := range seg.Services {
		present[svc.ID] = true
	}
	for _, svc := range seg.Services {
		if svc.ParentServiceID == nil {
			continue
		}
		parent := *svc.ParentServiceID
		if parent == svc.ID || !present[parent] {
			continue
		}
		s.branches[parent] = append(s.branches[parent], svc.ID)
	}
}

func (s *Store) unindexStreet(st *models.Street) {
	delete(s.index, st.ID)
	for _, seg := range st.MainSegments {
		s.unindexSegment(seg)
	}
}

func (s *Store) unindexSegment(seg *models.MainSegment) {
	delete(s.index, seg.ID)
	for _, svc := range seg.Services {
		s.unindexService(svc)
	}
}

func (s *Store) unindexService(svc *models.Service) {
	delete(s.index, svc.ID)
	delete(s.branches, svc.ID)
	if svc.ParentServiceID != nil {
		s.unlinkChild(*svc.ParentServiceID, svc.ID)
	}
	for _, m := range svc.Meters {
		delete(s.index, m.ID)
	}
}

func (s *Store) unlinkChild(parent, child int64) {
	kids := s.branches[parent]
	for i, id := range kids {
		if id == child {
			kids = append(kids[:i], kids[i+1:]...)
			break
		}
	}
	if len(kids) == 0 {
		delete(s.branches, parent)
		return
	}
	s.branches[parent] = kids
}

// The reposition helpers rewrite list positions from index from onwards
// after a splice.

func (s *Store) repositionProjects(from int) {
	for i := from; i < len(s.projects); i++ {
		s.index[s.projects[i].ID].pos = i
	}
}

func (s *Store) repositionStreets(p *models.Project, from int) {
	for i := from; i < len(p.Streets); i++ {
		s.index[p.Streets[i].ID].pos = i
	}
}

func (s *Store) repositionSegments(st *models.Street, from int) {
	for i := from; i < len(st.MainSegments); i++ {
		s.index[st.MainSegments[i].ID].pos = i
	}
}

func (s *Store) repositionServices(seg *models.MainSegment, from int) {
	for i := from; i < len(seg.Services); i++ {
		s.index[seg.Services[i].ID].pos = i
	}
}

func (s *Store) repositionMeters(svc *models.Service, from int) {
	for i := from; i < len(svc.Meters); i++ {
		s.index[svc.Meters[i].ID].pos = i
	}
}

// Locate reports where a live entity sits, regardless of the active
// selection.
func (s *Store) Locate(id int64) (Location, bool) {
	loc, ok := s.index[id]
	if !ok {
		return Location{}, false
	}
	return loc.export(), true
}

// Branches returns the ids of the services branching off serviceID, in
// segment order.
func (s *Store) Branches(serviceID int64) []int64 {
	kids := s.branches[serviceID]
	out := make([]int64, len(kids))
	copy(out, kids)
	return out
}

// Street returns a street of the active project.
func (s *Store) Street(id int64) (*models.Street, error) {
	loc, err := s.resolve(KindStreet, id)
	if err != nil {
		return nil, err
	}
	return loc.street, nil
}

func (s *Store) Segment(id int64) (*models.MainSegment, error) {
	loc, err := s.resolve(KindSegment, id)
	if err != nil {
		return nil, err
	}
	return loc.segment, nil
}

func (s *Store) Service(id int64) (*models.Service, error) {
	loc, err := s.resolve(KindService, id)
	if err != nil {
		return nil, err
	}
	return loc.service, nil
}

func (s *Store) Meter(id int64) (*models.Meter, error) {
	loc, err := s.resolve(KindMeter, id)
	if err != nil {
		return nil, err
	}
	return loc.meter, nil
}
