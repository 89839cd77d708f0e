package cli

import "quiz-rooms-service/internal/domain"

// seedQuestions is the built-in question bank used when Postgres is not
// configured; swap in the DB-backed loader for production content.
func seedQuestions() []domain.Question {
	return []domain.Question{
		{
			ID:      "nature-1",
			Genre:   "Nature",
			Prompt:  "What is the largest mammal?",
			Options: []string{"Blue Whale", "Elephant", "Giraffe", "Lion"},
			Correct: 0,
			Level:   domain.LevelEasy,
			Hint:    "This animal lives in the ocean and can grow up to 100 feet long.",
		},
		{
			ID:      "sports-1",
			Genre:   "Sports",
			Prompt:  "Which country won the 2018 FIFA World Cup?",
			Options: []string{"France", "Brazil", "Germany", "Argentina"},
			Correct: 0,
			Level:   domain.LevelMedium,
			Hint:    "This country is located in Western Europe and its capital is Paris.",
		},
		{
			ID:      "history-1",
			Genre:   "History",
			Prompt:  "Who was the first President of the USA?",
			Options: []string{"George Washington", "Abraham Lincoln", "Thomas Jefferson", "John Adams"},
			Correct: 0,
			Level:   domain.LevelEasy,
			Hint:    "This founding father led the Continental Army during the American Revolution.",
		},
		{
			ID:      "movies-1",
			Genre:   "Movies&TV",
			Prompt:  "Who directed \"Inception\"?",
			Options: []string{"Christopher Nolan", "Steven Spielberg", "Quentin Tarantino", "James Cameron"},
			Correct: 0,
			Level:   domain.LevelMedium,
			Hint:    "This director is also known for the Dark Knight trilogy and Interstellar.",
		},
		{
			ID:      "music-1",
			Genre:   "Music",
			Prompt:  "Who is known as the \"King of Pop\"?",
			Options: []string{"Michael Jackson", "Elvis Presley", "Prince", "Justin Bieber"},
			Correct: 0,
			Level:   domain.LevelEasy,
			Hint:    "This artist released the album \"Thriller\" in 1982.",
		},
		{
			ID:      "clg-1",
			Genre:   "Clg Sub",
			Prompt:  "Which of these is not a primitive data type in Java?",
			Options: []string{"String", "int", "boolean", "char"},
			Correct: 0,
			Level:   domain.LevelEasy,
			Hint:    "This data type is a class in Java, not a primitive type.",
		},
		{
			ID:      "clg-2",
			Genre:   "Clg Sub",
			Prompt:  "Which keyword is used to prevent method overriding in Java?",
			Options: []string{"final", "static", "private", "protected"},
			Correct: 0,
			Level:   domain.LevelMedium,
			Hint:    "This keyword can also be used to declare constants.",
		},
		{
			ID:      "clg-3",
			Genre:   "Clg Sub",
			Prompt:  "What is the purpose of cache memory?",
			Options: []string{"To reduce the average time to access data", "To store permanent data", "To increase RAM size", "To backup data"},
			Correct: 0,
			Level:   domain.LevelHard,
			Hint:    "It acts as a buffer between CPU and main memory.",
		},
		{
			ID:      "clg-4",
			Genre:   "Clg Sub",
			Prompt:  "Which register holds the address of the next instruction to be executed?",
			Options: []string{"Program Counter", "Instruction Register", "Memory Address Register", "Accumulator"},
			Correct: 0,
			Level:   domain.LevelMedium,
			Hint:    "This register is abbreviated as PC.",
		},
		{
			ID:      "clg-5",
			Genre:   "Clg Sub",
			Prompt:  "What is the purpose of virtual memory?",
			Options: []string{"To extend the apparent size of physical memory", "To increase CPU speed", "To improve network performance", "To enhance graphics processing"},
			Correct: 0,
			Level:   domain.LevelHard,
			Hint:    "It allows programs to use more memory than physically available.",
		},
		{
			ID:      "clg-6",
			Genre:   "Clg Sub",
			Prompt:  "What is the main purpose of an operating system?",
			Options: []string{"To manage computer hardware and software resources", "To create documents", "To browse the internet", "To play games"},
			Correct: 0,
			Level:   domain.LevelEasy,
			Hint:    "It acts as an intermediary between users and hardware.",
		},
		{
			ID:      "clg-7",
			Genre:   "Clg Sub",
			Prompt:  "Which of these is a universal gate?",
			Options: []string{"NAND", "AND", "OR", "NOT"},
			Correct: 0,
			Level:   domain.LevelMedium,
			Hint:    "This gate can be used to implement any other logic gate.",
		},
	}
}
