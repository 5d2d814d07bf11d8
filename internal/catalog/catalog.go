// Package catalog serves the read-only course, fee and student datasets.
// The data is a static fixture; enrollment and fee management live in an
// external system and are only mirrored here for the frontend.
package catalog

import "strings"

// Course describes a course offering.
type Course struct {
	ID               string `json:"id"`
	CourseCode       string `json:"courseCode"`
	CourseName       string `json:"courseName"`
	Department       string `json:"department"`
	Credits          int    `json:"credits"`
	Duration         string `json:"duration"`
	Instructor       string `json:"instructor"`
	Schedule         string `json:"schedule"`
	Classroom        string `json:"classroom"`
	Description      string `json:"description"`
	Prerequisites    string `json:"prerequisites"`
	EnrolledStudents int    `json:"enrolledStudents"`
	MaxCapacity      int    `json:"maxCapacity"`
	Semester         string `json:"semester"`
}

// FeeRecord describes a student's fee position for a semester.
type FeeRecord struct {
	ID                string `json:"id"`
	StudentID         string `json:"studentId"`
	StudentName       string `json:"studentName"`
	Course            string `json:"course"`
	Semester          string `json:"semester"`
	TotalFees         int    `json:"totalFees"`
	FeePaid           int    `json:"feePaid"`
	BalanceDue        int    `json:"balanceDue"`
	LastPaymentDate   string `json:"lastPaymentDate"`
	LastPaymentAmount int    `json:"lastPaymentAmount"`
	PaymentStatus     string `json:"paymentStatus"`
	DueDate           string `json:"dueDate"`
}

// FeeSummary aggregates collection figures across all students.
type FeeSummary struct {
	TotalFeesCollected      int     `json:"totalFeesCollected"`
	TotalOutstanding        int     `json:"totalOutstanding"`
	TotalStudents           int     `json:"totalStudents"`
	StudentsWithOutstanding int     `json:"studentsWithOutstanding"`
	CollectionRate          float64 `json:"collectionRate"`
}

// Student describes an enrolled student.
type Student struct {
	ID          string `json:"id"`
	StudentID   string `json:"studentId"`
	StudentName string `json:"studentName"`
	Course      string `json:"course"`
	Semester    string `json:"semester"`
	Email       string `json:"email"`
	Department  string `json:"department"`
}

// SubjectMark is a per-subject result within a MarkRecord.
type SubjectMark struct {
	Name       string `json:"name"`
	Marks      int    `json:"marks"`
	TotalMarks int    `json:"totalMarks"`
	Grade      string `json:"grade"`
}

// MarkRecord aggregates a student's marks for a semester.
type MarkRecord struct {
	ID            string        `json:"id"`
	StudentID     string        `json:"studentId"`
	StudentName   string        `json:"studentName"`
	Course        string        `json:"course"`
	Semester      string        `json:"semester"`
	TotalMarks    int           `json:"totalMarks"`
	MaxTotalMarks int           `json:"maxTotalMarks"`
	Percentage    float64       `json:"percentage"`
	GPA           float64       `json:"gpa"`
	Subjects      []SubjectMark `json:"subjects"`
}

var courses = []Course{
	{
		ID:               "1",
		CourseCode:       "CSE301",
		CourseName:       "Advanced Data Structures",
		Department:       "Computer Science",
		Credits:          4,
		Duration:         "16 weeks",
		Instructor:       "Dr. Vikas Kumar",
		Schedule:         "Mon, Wed, Fri 9:00-10:30 AM",
		Classroom:        "Room A-101",
		Description:      "Advanced concepts in data structures and algorithms",
		Prerequisites:    "CSE201 - Basic Data Structures",
		EnrolledStudents: 28,
		MaxCapacity:      35,
		Semester:         "Fall 2024",
	},
	{
		ID:               "2",
		CourseCode:       "CSE401",
		CourseName:       "Database Management Systems",
		Department:       "Computer Science",
		Credits:          3,
		Duration:         "16 weeks",
		Instructor:       "Prof. Hexaware Singh",
		Schedule:         "Tue, Thu 2:00-3:30 PM",
		Classroom:        "Room B-205",
		Description:      "Comprehensive study of database design and management",
		Prerequisites:    "CSE202 - Introduction to Databases",
		EnrolledStudents: 32,
		MaxCapacity:      40,
		Semester:         "Fall 2024",
	},
}

var fees = []FeeRecord{
	{
		ID:                "1",
		StudentID:         "HMS001",
		StudentName:       "Rajesh Kumar",
		Course:            "Computer Science Engineering",
		Semester:          "Fall 2024",
		TotalFees:         75000,
		FeePaid:           50000,
		BalanceDue:        25000,
		LastPaymentDate:   "2024-01-15",
		LastPaymentAmount: 25000,
		PaymentStatus:     "Partial",
		DueDate:           "2024-03-15",
	},
	{
		ID:                "2",
		StudentID:         "HMS002",
		StudentName:       "Priya Sharma",
		Course:            "Information Technology",
		Semester:          "Fall 2024",
		TotalFees:         70000,
		FeePaid:           70000,
		BalanceDue:        0,
		LastPaymentDate:   "2024-01-10",
		LastPaymentAmount: 35000,
		PaymentStatus:     "Paid",
		DueDate:           "2024-01-31",
	},
}

var feeSummary = FeeSummary{
	TotalFeesCollected:      245000,
	TotalOutstanding:        45000,
	TotalStudents:           8,
	StudentsWithOutstanding: 3,
	CollectionRate:          84.5,
}

var students = []Student{
	{
		ID:          "1",
		StudentID:   "HMS001",
		StudentName: "Rajesh Kumar",
		Course:      "Computer Science Engineering",
		Semester:    "Fall 2024",
		Email:       "rajesh@hexaware.college",
		Department:  "Computer Science",
	},
	{
		ID:          "2",
		StudentID:   "HMS002",
		StudentName: "Priya Sharma",
		Course:      "Information Technology",
		Semester:    "Fall 2024",
		Email:       "priya@hexaware.college",
		Department:  "Information Technology",
	},
}

var marks = []MarkRecord{
	{
		ID:            "1",
		StudentID:     "HMS001",
		StudentName:   "Rajesh Kumar",
		Course:        "Computer Science Engineering",
		Semester:      "Fall 2024",
		TotalMarks:    470,
		MaxTotalMarks: 500,
		Percentage:    94.0,
		GPA:           3.9,
		Subjects: []SubjectMark{
			{Name: "Data Structures", Marks: 98, TotalMarks: 100, Grade: "A+"},
			{Name: "Database Management", Marks: 92, TotalMarks: 100, Grade: "A+"},
			{Name: "Web Development", Marks: 89, TotalMarks: 100, Grade: "A"},
		},
	},
}

// Courses lists all course offerings.
func Courses() []Course {
	out := make([]Course, len(courses))
	copy(out, courses)
	return out
}

// Fees lists all fee records.
func Fees() []FeeRecord {
	out := make([]FeeRecord, len(fees))
	copy(out, fees)
	return out
}

// FeesSummary returns the aggregate collection figures.
func FeesSummary() FeeSummary {
	return feeSummary
}

// Students lists all enrolled students.
func Students() []Student {
	out := make([]Student, len(students))
	copy(out, students)
	return out
}

// SearchMarks returns mark records matching the query. A blank query
// matches nothing.
func SearchMarks(q string) []MarkRecord {
	q = strings.TrimSpace(strings.ToLower(q))
	if q == "" {
		return []MarkRecord{}
	}
	results := make([]MarkRecord, 0, len(marks))
	for _, record := range marks {
		if strings.Contains(strings.ToLower(record.StudentID), q) ||
			strings.Contains(strings.ToLower(record.StudentName), q) ||
			strings.Contains(strings.ToLower(record.Course), q) {
			results = append(results, record)
		}
	}
	return results
}
