package store

import "gsep-planner/internal/models"

// Every operation in this file addresses entities of the active project by
// id and fails with ErrNoActiveProject or a NotFoundError.

func (s *Store) AddStreet() (*models.Street, error) {
	p, err := s.ActiveProject()
	if err != nil {
		return nil, err
	}
	st := models.NewStreet(s.ids)
	p.Streets = append(p.Streets, st)
	p.NumberOfStreets = len(p.Streets)
	s.indexStreet(p, st, len(p.Streets)-1)
	return st, nil
}

func (s *Store) RemoveStreet(streetID int64) error {
	loc, err := s.resolve(KindStreet, streetID)
	if err != nil {
		return err
	}
	p := loc.project
	p.Streets = append(p.Streets[:loc.pos], p.Streets[loc.pos+1:]...)
	p.NumberOfStreets = len(p.Streets)
	s.unindexStreet(loc.street)
	s.repositionStreets(p, loc.pos)
	return nil
}

// UpdateStreet applies patch to a street. A NumberOfMainSegments member
// resizes the segment list through SetSegmentCount.
func (s *Store) UpdateStreet(streetID int64, patch models.StreetPatch) error {
	loc, err := s.resolve(KindStreet, streetID)
	if err != nil {
		return err
	}
	patch.Apply(loc.street)
	if patch.NumberOfMainSegments != nil {
		s.resize(loc, *patch.NumberOfMainSegments)
	}
	return nil
}

// SetSegmentCount grows the street's segment list with empty segments or
// truncates it, destroying the removed segments and everything they own.
// Negative counts are treated as zero.
func (s *Store) SetSegmentCount(streetID int64, n int) error {
	loc, err := s.resolve(KindStreet, streetID)
	if err != nil {
		return err
	}
	s.resize(loc, n)
	return nil
}

func (s *Store) resize(loc *location, n int) {
	if n < 0 {
		n = 0
	}
	st := loc.street
	cur := len(st.MainSegments)
	switch {
	case n > cur:
		for i := cur; i < n; i++ {
			seg := models.NewMainSegment(s.ids)
			st.MainSegments = append(st.MainSegments, seg)
			s.indexSegment(loc.project, st, seg, i)
		}
	case n < cur:
		for _, seg := range st.MainSegments[n:] {
			s.unindexSegment(seg)
		}
		st.MainSegments = st.MainSegments[:n:n]
	}
	st.NumberOfMainSegments = len(st.MainSegments)
}

func (s *Store) AddSegment(streetID int64) (*models.MainSegment, error) {
	loc, err := s.resolve(KindStreet, streetID)
	if err != nil {
		return nil, err
	}
	st := loc.street
	seg := models.NewMainSegment(s.ids)
	st.MainSegments = append(st.MainSegments, seg)
	st.NumberOfMainSegments = len(st.MainSegments)
	s.indexSegment(loc.project, st, seg, len(st.MainSegments)-1)
	return seg, nil
}

func (s *Store) RemoveSegment(segmentID int64) error {
	loc, err := s.resolve(KindSegment, segmentID)
	if err != nil {
		return err
	}
	st := loc.street
	st.MainSegments = append(st.MainSegments[:loc.pos], st.MainSegments[loc.pos+1:]...)
	st.NumberOfMainSegments = len(st.MainSegments)
	s.unindexSegment(loc.segment)
	s.repositionSegments(st, loc.pos)
	return nil
}

func (s *Store) UpdateSegment(segmentID int64, patch models.SegmentPatch) error {
	loc, err := s.resolve(KindSegment, segmentID)
	if err != nil {
		return err
	}
	patch.Apply(loc.segment)
	return nil
}

// AddService appends a service to a segment, pre-filled with the street's
// current name.
func (s *Store) AddService(segmentID int64) (*models.Service, error) {
	loc, err := s.resolve(KindSegment, segmentID)
	if err != nil {
		return nil, err
	}
	seg := loc.segment
	svc := models.NewService(s.ids, loc.street.Name)
	seg.Services = append(seg.Services, svc)
	seg.NumberOfServices = len(seg.Services)
	s.indexService(loc.project, loc.street, seg, svc, len(seg.Services)-1)
	return svc, nil
}

// AddBranchService creates a branch of serviceID and inserts it directly
// after its parent in the segment's service list.
func (s *Store) AddBranchService(serviceID int64) (*models.Service, error) {
	loc, err := s.resolve(KindService, serviceID)
	if err != nil {
		return nil, err
	}
	seg := loc.segment
	parent := loc.service
	branch := models.NewService(s.ids, parent.StreetName)
	pid := parent.ID
	branch.ParentServiceID = &pid

	at := loc.pos + 1
	seg.Services = append(seg.Services, nil)
	copy(seg.Services[at+1:], seg.Services[at:])
	seg.Services[at] = branch
	seg.NumberOfServices = len(seg.Services)

	s.indexService(loc.project, loc.street, seg, branch, at)
	s.repositionServices(seg, at+1)
	s.branches[pid] = append([]int64{branch.ID}, s.branches[pid]...)
	return branch, nil
}

// RemoveService removes a service together with its direct branches. Branches
// of those branches are not followed; they stay in the segment as orphans.
// The ids of every removed service are returned.
func (s *Store) RemoveService(serviceID int64) ([]int64, error) {
	loc, err := s.resolve(KindService, serviceID)
	if err != nil {
		return nil, err
	}
	seg := loc.segment
	doomed := map[int64]bool{serviceID: true}
	for _, id := range s.branches[serviceID] {
		doomed[id] = true
	}

	removed := make([]int64, 0, len(doomed))
	kept := seg.Services[:0]
	for _, svc := range seg.Services {
		if doomed[svc.ID] {
			removed = append(removed, svc.ID)
			continue
		}
		kept = append(kept, svc)
	}
	for i := len(kept); i < len(seg.Services); i++ {
		seg.Services[i] = nil
	}
	// unindex after the splice; the doomed services are still reachable
	// through the index entries.
	for _, id := range removed {
		s.unindexService(s.index[id].service)
	}
	seg.Services = kept
	seg.NumberOfServices = len(seg.Services)
	s.repositionServices(seg, 0)
	return removed, nil
}

func (s *Store) UpdateService(serviceID int64, patch models.ServicePatch) error {
	loc, err := s.resolve(KindService, serviceID)
	if err != nil {
		return err
	}
	patch.Apply(loc.service)
	return nil
}

func (s *Store) AddMeter(serviceID int64) (*models.Meter, error) {
	loc, err := s.resolve(KindService, serviceID)
	if err != nil {
		return nil, err
	}
	svc := loc.service
	m := models.NewMeter(s.ids)
	svc.Meters = append(svc.Meters, m)
	svc.NumberOfMeters = len(svc.Meters)
	s.index[m.ID] = &location{
		kind: KindMeter, pos: len(svc.Meters) - 1,
		project: loc.project, street: loc.street, segment: loc.segment, service: svc, meter: m,
	}
	return m, nil
}

func (s *Store) RemoveMeter(meterID int64) error {
	loc, err := s.resolve(KindMeter, meterID)
	if err != nil {
		return err
	}
	svc := loc.service
	svc.Meters = append(svc.Meters[:loc.pos], svc.Meters[loc.pos+1:]...)
	svc.NumberOfMeters = len(svc.Meters)
	delete(s.index, meterID)
	s.repositionMeters(svc, loc.pos)
	return nil
}

func (s *Store) UpdateMeter(meterID int64, patch models.MeterPatch) error {
	loc, err := s.resolve(KindMeter, meterID)
	if err != nil {
		return err
	}
	patch.Apply(loc.meter)
	return nil
}

// MoveStreet re-parents a street of the active project, with its subtree,
// to the end of another project's street list. Moving onto the active
// project itself is a no-op.
func (s *Store) MoveStreet(streetID, targetProjectID int64) error {
	loc, err := s.resolve(KindStreet, streetID)
	if err != nil {
		return err
	}
	target, err := s.Project(targetProjectID)
	if err != nil {
		return err
	}
	src := loc.project
	if target == src {
		return nil
	}
	st := loc.street
	pos := loc.pos

	src.Streets = append(src.Streets[:pos], src.Streets[pos+1:]...)
	src.NumberOfStreets = len(src.Streets)
	s.unindexStreet(st)
	s.repositionStreets(src, pos)

	target.Streets = append(target.Streets, st)
	target.NumberOfStreets = len(target.Streets)
	s.indexStreet(target, st, len(target.Streets)-1)
	return nil
}
