package entity

// Collection is the closed set of logical record collections. Each one maps
// to exactly one storage key in the kv substrate.
type Collection string

const (
	Course           Collection = "Course"
	Folder           Collection = "Folder"
	Subject          Collection = "Subject"
	Quiz             Collection = "Quiz"
	QuizSettings     Collection = "QuizSettings"
	User             Collection = "User"
	QuizAttempt      Collection = "QuizAttempt"
	UserStats        Collection = "UserStats"
	DeletedItem      Collection = "DeletedItem"
	QuizSession      Collection = "QuizSession"
	ExamDate         Collection = "ExamDate"
	CourseEnrollment Collection = "CourseEnrollment"
	CourseAccessCode Collection = "CourseAccessCode"
	GameRoom         Collection = "GameRoom"
	Tournament       Collection = "Tournament"
	Audio            Collection = "Audio"
	FeatureUsage     Collection = "FeatureUsage"
	QuizAnswer       Collection = "QuizAnswer"
	Question         Collection = "Question"
)

var storageKeys = map[Collection]string{
	Course:           "app_courses",
	Folder:           "app_folders",
	Subject:          "app_subjects",
	Quiz:             "app_quizzes",
	QuizSettings:     "app_quiz_settings",
	User:             "app_users",
	QuizAttempt:      "app_quiz_attempts",
	UserStats:        "app_user_stats",
	DeletedItem:      "app_deleted_items",
	QuizSession:      "app_quiz_sessions",
	ExamDate:         "app_exam_dates",
	CourseEnrollment: "app_course_enrollments",
	CourseAccessCode: "app_course_access_codes",
	GameRoom:         "app_game_rooms",
	Tournament:       "app_tournaments",
	Audio:            "app_audios",
	FeatureUsage:     "app_feature_usage",
	QuizAnswer:       "app_quiz_answers",
	Question:         "app_questions",
}

// ParseCollection resolves a collection by its external name.
func ParseCollection(name string) (Collection, bool) {
	c := Collection(name)
	_, ok := storageKeys[c]
	return c, ok
}

func (c Collection) storageKey() (string, bool) {
	k, ok := storageKeys[c]
	return k, ok
}
