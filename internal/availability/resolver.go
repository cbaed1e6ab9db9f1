package availability

import (
	"time"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// TermResource equipment chosen for one term
type TermResource struct {
	Term       string
	Window     domain.Interval
	ResourceID int64
}

// Assignment what is passed to the booking-creation call
// Resources is empty when the program has no explicit resource binding
// or the resource check was skipped: the upstream platform assigns equipment itself
type Assignment struct {
	StaffID   int64
	Resources []TermResource
}

// ResourceIDs chosen equipment ids in term order
func (a Assignment) ResourceIDs() []int64 {
	ids := make([]int64, 0, len(a.Resources))
	for _, r := range a.Resources {
		ids = append(ids, r.ResourceID)
	}
	return ids
}

// HasResources true when equipment must be passed upstream
func (a Assignment) HasResources() bool {
	return len(a.Resources) > 0
}

// Resolver picks one staff member and per-term equipment for an available slot
type Resolver struct {
	evaluator *Evaluator
}

// NewResolver создает новый экземпляр Resolver
func NewResolver(evaluator *Evaluator) *Resolver {
	return &Resolver{evaluator: evaluator}
}

// Resolve evaluates the slot and resolves the assignment against the current time
func (r *Resolver) Resolve(snap *domain.Snapshot, program *domain.Program, slot domain.Slot) (Assignment, error) {
	return r.ResolveAt(r.evaluator.Now(), snap, program, slot)
}

// ResolveAt evaluates the slot as of now; a non-available slot yields *UnavailableError
func (r *Resolver) ResolveAt(now time.Time, snap *domain.Snapshot, program *domain.Program, slot domain.Slot) (Assignment, error) {
	result, err := r.evaluator.EvaluateAt(now, snap, program, slot)
	if err != nil {
		return Assignment{}, err
	}
	return FromResult(result)
}

// FromResult first-match selection over an already evaluated result
func FromResult(result Result) (Assignment, error) {
	if !result.Reason.IsAvailable() {
		return Assignment{}, &UnavailableError{Reason: result.Reason}
	}
	if len(result.Staff) == 0 {
		return Assignment{}, malformed("available result without eligible staff")
	}

	assignment := Assignment{
		StaffID:   result.Staff[0],
		Resources: make([]TermResource, 0, len(result.Terms)),
	}
	for _, tc := range result.Terms {
		assignment.Resources = append(assignment.Resources, TermResource{
			Term:       tc.Term.Name,
			Window:     tc.Window,
			ResourceID: tc.ResourceIDs[0],
		})
	}
	return assignment, nil
}
