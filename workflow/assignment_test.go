package workflow

import (
	"errors"
	"testing"

	"lms/models"
	"lms/repository"
	"lms/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sentMessage struct {
	phone string
	text  string
}

// fakeNotifier records sends and can be told to fail either message shape.
type fakeNotifier struct {
	sessions        []sentMessage
	interactives    []sentMessage
	failSession     error
	failInteractive error
}

func (f *fakeNotifier) SendSessionMessage(phone, text string) error {
	if f.failSession != nil {
		return f.failSession
	}
	f.sessions = append(f.sessions, sentMessage{phone, text})
	return nil
}

func (f *fakeNotifier) SendInteractiveButtonsMessage(phone, header, body string, buttons []string) error {
	if f.failInteractive != nil {
		return f.failInteractive
	}
	f.interactives = append(f.interactives, sentMessage{phone, body})
	return nil
}

func newTestService(t *testing.T) (*Service, *fakeNotifier, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Learner{}, &models.Course{}, &models.CourseProgress{}))

	notifier := &fakeNotifier{}
	svc := NewService(repository.NewProgressRepository(db), notifier, utils.NormalizePhone)
	return svc, notifier, db
}

func seedLearner(t *testing.T, db *gorm.DB, name, phone string) models.Learner {
	t.Helper()
	l := models.Learner{Name: name, Phone: phone, Status: models.LearnerActive}
	require.NoError(t, db.Create(&l).Error)
	return l
}

func seedCourse(t *testing.T, db *gorm.DB, name string) models.Course {
	t.Helper()
	c := models.Course{Name: name, Status: models.CourseActive}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func activeRows(t *testing.T, db *gorm.DB, phone string) []models.CourseProgress {
	t.Helper()
	var rows []models.CourseProgress
	require.NoError(t, db.
		Where("phone_number = ? AND status IN ?", phone, models.ActiveProgressStatuses).
		Find(&rows).Error)
	return rows
}

func TestAssignCleanLearner(t *testing.T) {
	svc, notifier, db := newTestService(t)
	learner := seedLearner(t, db, "Asha", "9876543210")
	course := seedCourse(t, db, "Golang Basics")

	result := svc.AssignCourse([]models.Learner{learner}, course, false)

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, OutcomeAssigned, result.Outcomes[0].Status)
	assert.NoError(t, result.FirstError())

	rows := activeRows(t, db, "+919876543210")
	require.Len(t, rows, 1)
	assert.Equal(t, models.ProgressAssigned, rows[0].Status)
	assert.Equal(t, 1, rows[0].CurrentDay)

	// exactly one new-assignment message, zero suspension messages
	assert.Len(t, notifier.interactives, 1)
	assert.Empty(t, notifier.sessions)

	var reloaded models.Learner
	require.NoError(t, db.First(&reloaded, learner.ID).Error)
	require.NotNil(t, reloaded.AssignedCourseID)
	assert.Equal(t, course.ID, *reloaded.AssignedCourseID)
}

func TestConflictWithoutConfirmation(t *testing.T) {
	svc, notifier, db := newTestService(t)
	learner := seedLearner(t, db, "Asha", "9876543210")
	oldCourse := seedCourse(t, db, "Old Course")
	newCourse := seedCourse(t, db, "New Course")

	svc.AssignCourse([]models.Learner{learner}, oldCourse, false)
	notifier.interactives = nil

	result := svc.AssignCourse([]models.Learner{learner}, newCourse, false)

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, OutcomeNeedsConfirmation, result.Outcomes[0].Status)
	assert.Equal(t, []string{"Old Course"}, result.Outcomes[0].ConflictingCourses)
	assert.True(t, result.NeedsConfirmation())

	// nothing mutated, nothing sent
	rows := activeRows(t, db, "+919876543210")
	require.Len(t, rows, 1)
	assert.Equal(t, "Old Course", rows[0].CourseName)
	assert.Empty(t, notifier.interactives)
	assert.Empty(t, notifier.sessions)
}

func TestConfirmedOverwrite(t *testing.T) {
	svc, notifier, db := newTestService(t)
	learner := seedLearner(t, db, "Asha", "9876543210")
	oldCourse := seedCourse(t, db, "Old Course")
	newCourse := seedCourse(t, db, "New Course")

	svc.AssignCourse([]models.Learner{learner}, oldCourse, false)
	notifier.interactives = nil

	result := svc.AssignCourse([]models.Learner{learner}, newCourse, true)

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, OutcomeAssigned, result.Outcomes[0].Status)

	rows := activeRows(t, db, "+919876543210")
	require.Len(t, rows, 1)
	assert.Equal(t, "New Course", rows[0].CourseName)

	var suspended models.CourseProgress
	require.NoError(t, db.Where("course_name = ?", "Old Course").First(&suspended).Error)
	assert.Equal(t, models.ProgressSuspended, suspended.Status)

	require.Len(t, notifier.sessions, 1)
	assert.Contains(t, notifier.sessions[0].text, "Old Course")
	assert.Len(t, notifier.interactives, 1)

	var reloaded models.Learner
	require.NoError(t, db.First(&reloaded, learner.ID).Error)
	assert.Equal(t, newCourse.ID, *reloaded.AssignedCourseID)
}

func TestSuspensionNotificationIsBestEffort(t *testing.T) {
	svc, notifier, db := newTestService(t)
	learner := seedLearner(t, db, "Asha", "9876543210")
	oldCourse := seedCourse(t, db, "Old Course")
	newCourse := seedCourse(t, db, "New Course")

	svc.AssignCourse([]models.Learner{learner}, oldCourse, false)
	notifier.failSession = errors.New("provider down")

	result := svc.AssignCourse([]models.Learner{learner}, newCourse, true)

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, OutcomeAssigned, result.Outcomes[0].Status)

	rows := activeRows(t, db, "+919876543210")
	require.Len(t, rows, 1)
	assert.Equal(t, "New Course", rows[0].CourseName)
}

func TestNewAssignmentNotificationFailureAborts(t *testing.T) {
	svc, notifier, db := newTestService(t)
	learner := seedLearner(t, db, "Asha", "9876543210")
	course := seedCourse(t, db, "Golang Basics")

	notifier.failInteractive = errors.New("provider down")
	result := svc.AssignCourse([]models.Learner{learner}, course, false)

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, OutcomeFailed, result.Outcomes[0].Status)
	assert.Contains(t, result.Outcomes[0].Error, "provider down")

	// the fatal send happens before any write: no progress row, no pointer
	assert.Empty(t, activeRows(t, db, "+919876543210"))
	var reloaded models.Learner
	require.NoError(t, db.First(&reloaded, learner.ID).Error)
	assert.Nil(t, reloaded.AssignedCourseID)
}

func TestMissingAndInvalidPhones(t *testing.T) {
	svc, _, db := newTestService(t)
	course := seedCourse(t, db, "Golang Basics")

	noPhone := seedLearner(t, db, "NoPhone", "")
	result := svc.AssignCourse([]models.Learner{noPhone}, course, false)
	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, OutcomeFailed, result.Outcomes[0].Status)
	assert.ErrorIs(t, result.FirstError(), ErrMissingPhone)

	shortPhone := seedLearner(t, db, "ShortPhone", "12345")
	result = svc.AssignCourse([]models.Learner{shortPhone}, course, false)
	require.Len(t, result.Outcomes, 1)
	assert.ErrorIs(t, result.FirstError(), utils.ErrInvalidPhoneNumber)
}

func TestBatchHaltsOnFirstFailure(t *testing.T) {
	svc, _, db := newTestService(t)
	course := seedCourse(t, db, "Golang Basics")

	first := seedLearner(t, db, "First", "9876543210")
	second := seedLearner(t, db, "Second", "12345") // fails normalization
	third := seedLearner(t, db, "Third", "9876500000")

	result := svc.AssignCourse([]models.Learner{first, second, third}, course, false)

	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, OutcomeAssigned, result.Outcomes[0].Status)
	assert.Equal(t, OutcomeFailed, result.Outcomes[1].Status)
	assert.Equal(t, OutcomeSkipped, result.Outcomes[2].Status)
	assert.Equal(t, 1, result.AssignedCount())

	// first learner's assignment stands, third was never attempted
	assert.Len(t, activeRows(t, db, "+919876543210"), 1)
	assert.Empty(t, activeRows(t, db, "+919876500000"))
}

func TestSuspendsAllActiveRowsOnAnomaly(t *testing.T) {
	svc, notifier, db := newTestService(t)
	learner := seedLearner(t, db, "Asha", "9876543210")
	newCourse := seedCourse(t, db, "New Course")

	// two active rows for the same phone should never happen, but when it
	// does every one is suspended and notified
	for _, name := range []string{"Course A", "Course B"} {
		require.NoError(t, db.Create(&models.CourseProgress{
			UUID: name, LearnerID: learner.ID, LearnerName: learner.Name,
			CourseID: 99, CourseName: name,
			PhoneNumber: "+919876543210", Status: models.ProgressStarted, CurrentDay: 3,
		}).Error)
	}

	result := svc.AssignCourse([]models.Learner{learner}, newCourse, true)

	require.Len(t, result.Outcomes, 1)
	assert.Equal(t, OutcomeAssigned, result.Outcomes[0].Status)
	assert.Len(t, notifier.sessions, 2)

	rows := activeRows(t, db, "+919876543210")
	require.Len(t, rows, 1)
	assert.Equal(t, "New Course", rows[0].CourseName)
}

// The check-suspend-insert sequence is not atomic and has no unique
// constraint behind it. Two invocations that both observe no active progress
// both insert, so the at-most-one-active invariant can be violated. This is
// the documented race, preserved as-is.
func TestDoubleAssignProducesTwoActiveRows(t *testing.T) {
	svc, _, db := newTestService(t)
	learner := seedLearner(t, db, "Asha", "9876543210")
	course := seedCourse(t, db, "Golang Basics")

	svc.AssignCourse([]models.Learner{learner}, course, false)

	// simulate the second racer's stale read by confirming the overwrite of
	// rows it never saw suspended; with confirm=true the suspend runs first
	// here, so instead insert directly the way a concurrent run would
	_, err := repository.NewProgressRepository(db).InsertAssigned(learner, course, "+919876543210")
	require.NoError(t, err)

	rows := activeRows(t, db, "+919876543210")
	assert.Len(t, rows, 2)
}
