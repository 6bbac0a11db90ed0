package workflow

import (
	"errors"
	"fmt"
	"log"

	"lms/models"
	"lms/repository"
	"lms/whatsapp"
)

// ErrMissingPhone indicates the learner has no phone on file.
var ErrMissingPhone = errors.New("learner has no phone number on file")

// Per-learner terminal states of an assignment attempt.
const (
	OutcomeAssigned          = "ASSIGNED"
	OutcomeNeedsConfirmation = "NEEDS_CONFIRMATION"
	OutcomeFailed            = "FAILED"
	OutcomeSkipped           = "SKIPPED"
)

// Notifier is the outbound message surface the workflow needs. Satisfied by
// *whatsapp.Client; tests substitute a fake.
type Notifier interface {
	SendSessionMessage(phone, text string) error
	SendInteractiveButtonsMessage(phone, header, body string, buttons []string) error
}

// PhoneNormalizer matches utils.NormalizePhone.
type PhoneNormalizer func(raw string) (string, error)

// LearnerOutcome is the result of one learner's assignment attempt.
type LearnerOutcome struct {
	LearnerID          uint     `json:"learner_id"`
	LearnerName        string   `json:"learner_name"`
	Status             string   `json:"status"`
	ConflictingCourses []string `json:"conflicting_courses,omitempty"`
	Error              string   `json:"error,omitempty"`

	err error
}

// BatchResult holds per-learner outcomes so partial success stays queryable.
// Processing is strictly sequential and halts on the first failure or
// confirmation request; learners after the halt are marked SKIPPED.
type BatchResult struct {
	Outcomes []LearnerOutcome `json:"outcomes"`
}

// NeedsConfirmation reports whether the batch stopped waiting for an
// explicit overwrite confirmation.
func (r BatchResult) NeedsConfirmation() bool {
	for _, o := range r.Outcomes {
		if o.Status == OutcomeNeedsConfirmation {
			return true
		}
	}
	return false
}

// FirstError returns the error that halted the batch, or nil.
func (r BatchResult) FirstError() error {
	for _, o := range r.Outcomes {
		if o.Status == OutcomeFailed {
			return o.err
		}
	}
	return nil
}

// AssignedCount returns how many learners were fully assigned.
func (r BatchResult) AssignedCount() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == OutcomeAssigned {
			n++
		}
	}
	return n
}

// Service orchestrates course assignment: conflict detection, suspension of
// superseded progress, WhatsApp notifications and the denormalized learner
// pointer update. No step is transactional; a failure partway leaves earlier
// writes applied.
type Service struct {
	repo      *repository.ProgressRepository
	notifier  Notifier
	normalize PhoneNormalizer
}

// NewService builds an assignment service.
func NewService(repo *repository.ProgressRepository, notifier Notifier, normalize PhoneNormalizer) *Service {
	return &Service{repo: repo, notifier: notifier, normalize: normalize}
}

// AssignCourse runs the assignment workflow for each learner in order. One
// learner's failure does not roll back earlier learners, but it stops the
// batch: the remaining learners are reported as SKIPPED and must be
// re-submitted.
func (s *Service) AssignCourse(learners []models.Learner, course models.Course, confirmOverwrite bool) BatchResult {
	var result BatchResult

	for i, learner := range learners {
		outcome := s.assignOne(learner, course, confirmOverwrite)
		result.Outcomes = append(result.Outcomes, outcome)

		if outcome.Status == OutcomeFailed || outcome.Status == OutcomeNeedsConfirmation {
			for _, rest := range learners[i+1:] {
				result.Outcomes = append(result.Outcomes, LearnerOutcome{
					LearnerID:   rest.ID,
					LearnerName: rest.Name,
					Status:      OutcomeSkipped,
				})
			}
			break
		}
	}

	return result
}

func (s *Service) assignOne(learner models.Learner, course models.Course, confirmOverwrite bool) LearnerOutcome {
	outcome := LearnerOutcome{LearnerID: learner.ID, LearnerName: learner.Name}

	fail := func(err error) LearnerOutcome {
		outcome.Status = OutcomeFailed
		outcome.Error = err.Error()
		outcome.err = err
		return outcome
	}

	if learner.Phone == "" {
		return fail(ErrMissingPhone)
	}

	phone, err := s.normalize(learner.Phone)
	if err != nil {
		return fail(err)
	}

	active, err := s.repo.FindActiveByPhone(phone)
	if err != nil {
		return fail(err)
	}

	if len(active) > 0 {
		if !confirmOverwrite {
			outcome.Status = OutcomeNeedsConfirmation
			for _, row := range active {
				outcome.ConflictingCourses = append(outcome.ConflictingCourses, row.CourseName)
			}
			return outcome
		}

		if _, err := s.repo.SuspendActiveByPhone(phone); err != nil {
			return fail(err)
		}

		// Suspension notifications are best-effort: the learner must still
		// get the new course even if we could not tell them the old one
		// ended.
		for _, row := range active {
			text := fmt.Sprintf(
				"Hi %s, your course \"%s\" has been suspended because a new course was assigned to you.",
				learner.Name, row.CourseName,
			)
			if err := s.notifier.SendSessionMessage(phone, text); err != nil {
				log.Printf("Warning: suspension notification for %s (course %q) failed: %v", phone, row.CourseName, err)
			}
		}
	}

	// The new-assignment message is fatal on failure, and it is sent before
	// any write for this learner: an operator must never end up with an
	// assigned course the learner was not told about.
	body := fmt.Sprintf(
		"Hi %s! You have been assigned a new course: %s. Tap the button below to begin Day 1.",
		learner.Name, course.Name,
	)
	if err := s.notifier.SendInteractiveButtonsMessage(phone, truncate(course.Name, whatsapp.MaxHeaderLength), body, []string{"Start Course"}); err != nil {
		return fail(err)
	}

	if err := s.repo.UpdateLearnerAssignedCourse(learner.ID, course.ID); err != nil {
		return fail(err)
	}

	if _, err := s.repo.InsertAssigned(learner, course, phone); err != nil {
		return fail(err)
	}

	outcome.Status = OutcomeAssigned
	return outcome
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
