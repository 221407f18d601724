package course

// SampleCourseID is the ID of the built-in course.
const SampleCourseID = "advanced-python"

// seedCourses returns the courses compiled into the binary.
func seedCourses() []Course {
	return []Course{
		{
			ID:     SampleCourseID,
			Title:  "Advanced Python Programming",
			Module: "Module 1: Python Fundamentals",
			Media: Media{
				URL:       "https://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
				PosterURL: "https://images.unsplash.com/photo-1516116216624-53e697fedbea?w=800&h=450&fit=crop",
			},
			Topics: []Topic{
				{ID: "1", Title: "Introduction to Python", Start: 0, End: 30, Description: "Learn the basics of Python programming language"},
				{ID: "2", Title: "Variables and Data Types", Start: 30, End: 60, Description: "Understanding Python variables and data types"},
				{ID: "3", Title: "Control Flow", Start: 60, End: 90, Description: "If statements, loops, and conditions"},
				{ID: "4", Title: "Functions", Start: 90, End: 120, Description: "Creating and using functions in Python"},
			},
			Questions: []Question{
				{
					ID:      "1",
					Prompt:  "What is Python?",
					Options: []string{"A snake", "A programming language", "A database", "An operating system"},
					Correct: 1,
				},
				{
					ID:      "2",
					Prompt:  "Which keyword is used to define a function in Python?",
					Options: []string{"func", "define", "def", "function"},
					Correct: 2,
				},
			},
		},
	}
}
