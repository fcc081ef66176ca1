package services

import (
	"gsep-planner/internal/models"

	"go.uber.org/zap"
)

// Editor operations address entities of the active project by id. Each
// returns a copy of the entity it touched.

func (s *PlannerService) AddStreet() (*models.Street, error) {
	var st, out *models.Street
	err := s.apply("add_street", func() (err error) {
		st, err = s.store.AddStreet()
		return err
	}, func() { out = st.Clone() })
	return out, err
}

func (s *PlannerService) RemoveStreet(streetID int64) error {
	return s.do("remove_street", func() error {
		return s.store.RemoveStreet(streetID)
	})
}

func (s *PlannerService) UpdateStreet(streetID int64, patch models.StreetPatch) (*models.Street, error) {
	return s.street("update_street", streetID, func() error {
		return s.store.UpdateStreet(streetID, patch)
	})
}

// SetSegmentCount resizes a street destructively.
func (s *PlannerService) SetSegmentCount(streetID int64, n int) (*models.Street, error) {
	return s.street("set_segment_count", streetID, func() error {
		return s.store.SetSegmentCount(streetID, n)
	})
}

func (s *PlannerService) street(op string, streetID int64, fn func() error) (*models.Street, error) {
	var st, out *models.Street
	err := s.apply(op, func() (err error) {
		if err := fn(); err != nil {
			return err
		}
		st, err = s.store.Street(streetID)
		return err
	}, func() { out = st.Clone() })
	return out, err
}

// MoveStreet re-parents a street of the active project onto another project.
func (s *PlannerService) MoveStreet(streetID, targetProjectID int64) error {
	err := s.do("move_street", func() error {
		return s.store.MoveStreet(streetID, targetProjectID)
	})
	if err == nil {
		s.logr.Info("street moved", zap.Int64("street_id", streetID), zap.Int64("target_project_id", targetProjectID))
	}
	return err
}

func (s *PlannerService) AddSegment(streetID int64) (*models.MainSegment, error) {
	var seg, out *models.MainSegment
	err := s.apply("add_segment", func() (err error) {
		seg, err = s.store.AddSegment(streetID)
		return err
	}, func() { out = seg.Clone() })
	return out, err
}

func (s *PlannerService) RemoveSegment(segmentID int64) error {
	return s.do("remove_segment", func() error {
		return s.store.RemoveSegment(segmentID)
	})
}

func (s *PlannerService) UpdateSegment(segmentID int64, patch models.SegmentPatch) (*models.MainSegment, error) {
	var seg, out *models.MainSegment
	err := s.apply("update_segment", func() (err error) {
		if err := s.store.UpdateSegment(segmentID, patch); err != nil {
			return err
		}
		seg, err = s.store.Segment(segmentID)
		return err
	}, func() { out = seg.Clone() })
	return out, err
}

func (s *PlannerService) AddService(segmentID int64) (*models.Service, error) {
	var svc, out *models.Service
	err := s.apply("add_service", func() (err error) {
		svc, err = s.store.AddService(segmentID)
		return err
	}, func() { out = svc.Clone() })
	return out, err
}

// AddBranchService inserts a branch right after its parent service.
func (s *PlannerService) AddBranchService(parentID int64) (*models.Service, error) {
	var svc, out *models.Service
	err := s.apply("add_branch_service", func() (err error) {
		svc, err = s.store.AddBranchService(parentID)
		return err
	}, func() { out = svc.Clone() })
	return out, err
}

// RemoveService removes a service with its direct branches and returns
// every removed id.
func (s *PlannerService) RemoveService(serviceID int64) ([]int64, error) {
	var removed []int64
	err := s.do("remove_service", func() error {
		ids, err := s.store.RemoveService(serviceID)
		removed = ids
		return err
	})
	return removed, err
}

func (s *PlannerService) UpdateService(serviceID int64, patch models.ServicePatch) (*models.Service, error) {
	var svc, out *models.Service
	err := s.apply("update_service", func() (err error) {
		if err := s.store.UpdateService(serviceID, patch); err != nil {
			return err
		}
		svc, err = s.store.Service(serviceID)
		return err
	}, func() { out = svc.Clone() })
	return out, err
}

// Branches lists the services branching off serviceID, in segment order.
func (s *PlannerService) Branches(serviceID int64) ([]int64, error) {
	var out []int64
	err := s.do("branches", func() error {
		if _, err := s.store.Service(serviceID); err != nil {
			return err
		}
		out = s.store.Branches(serviceID)
		return nil
	})
	return out, err
}

func (s *PlannerService) AddMeter(serviceID int64) (*models.Meter, error) {
	var m, out *models.Meter
	err := s.apply("add_meter", func() (err error) {
		m, err = s.store.AddMeter(serviceID)
		return err
	}, func() { out = m.Clone() })
	return out, err
}

func (s *PlannerService) RemoveMeter(meterID int64) error {
	return s.do("remove_meter", func() error {
		return s.store.RemoveMeter(meterID)
	})
}

func (s *PlannerService) UpdateMeter(meterID int64, patch models.MeterPatch) (*models.Meter, error) {
	var m, out *models.Meter
	err := s.apply("update_meter", func() (err error) {
		if err := s.store.UpdateMeter(meterID, patch); err != nil {
			return err
		}
		m, err = s.store.Meter(meterID)
		return err
	}, func() { out = m.Clone() })
	return out, err
}
