package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/academica/academica-backend/internal/config"
	"github.com/academica/academica-backend/internal/database"
	"github.com/academica/academica-backend/internal/logger"
	"github.com/academica/academica-backend/internal/model"
	"github.com/academica/academica-backend/internal/repository"
	"github.com/academica/academica-backend/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	studentRepo := repository.NewStudentRepository(pool)
	professorRepo := repository.NewProfessorRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)

	studentService := service.NewStudentService(studentRepo)
	professorService := service.NewProfessorService(professorRepo)

	fmt.Println("=== Seeding Demo Data ===")

	// ─── Professor ─────────────────────────────────────────────────────
	hashed, err := bcrypt.GenerateFromPassword([]byte("professor123"), cfg.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	professor := &model.Professor{
		Email:        "a.turing@academica.edu",
		Name:         "Alan Turing",
		Department:   "Computer Science",
		PasswordHash: string(hashed),
	}
	if err := professorService.Create(ctx, professor); err != nil {
		fmt.Printf("Professor seed skipped: %v\n", err)
	} else {
		fmt.Printf("Created professor with ID: %d\n", professor.ID)
	}

	// ─── Courses ───────────────────────────────────────────────────────
	courses := []*model.Course{
		{
			Code:        "CS101",
			Title:       "Introduction to Programming",
			Description: "Foundations of programming and problem solving.",
			ProfessorID: professor.ID,
			Credits:     3,
			MaxCapacity: 60,
			Semester:    "Fall",
			Year:        2026,
			MajorCode:   "CS",
		},
		{
			Code:        "CS230",
			Title:       "Data Structures",
			Description: "Lists, trees, graphs and the algorithms over them.",
			ProfessorID: professor.ID,
			Credits:     4,
			MaxCapacity: 45,
			Semester:    "Fall",
			Year:        2026,
			MajorCode:   "CS",
		},
		{
			Code:        "MA110",
			Title:       "Discrete Mathematics",
			Description: "Logic, sets, combinatorics and proofs.",
			ProfessorID: professor.ID,
			Credits:     3,
			MaxCapacity: 80,
			Semester:    "Fall",
			Year:        2026,
		},
	}
	for _, course := range courses {
		if err := courseRepo.Create(ctx, course); err != nil {
			fmt.Printf("Course %s seed skipped: %v\n", course.Code, err)
			continue
		}
		fmt.Printf("Created course %s with ID: %d\n", course.Code, course.ID)
	}

	// ─── Students ──────────────────────────────────────────────────────
	names := []string{
		"Grace Hopper", "Ada Lovelace", "Edsger Dijkstra", "Barbara Liskov", "Donald Knuth",
		"Margaret Hamilton", "John Backus", "Frances Allen", "Tony Hoare", "Radia Perlman",
		"Ken Thompson", "Shafi Goldwasser", "Dennis Ritchie", "Katherine Johnson", "Niklaus Wirth",
		"Jean Bartik", "Leslie Lamport", "Annie Easley", "Alonzo Church", "Mary Jackson",
	}

	successCount := 0
	for i, name := range names {
		student := &model.Student{
			StudentNumber:  fmt.Sprintf("S%06d", i+1),
			Name:           name,
			Email:          fmt.Sprintf("student%d@academica.edu", i+1),
			PasswordHash:   "student123", // Hashed by the service
			MajorCode:      "CS",
			EnrollmentYear: 2024,
		}
		if i%4 == 3 {
			student.MajorCode = "MA"
		}

		if err := studentService.Create(ctx, student); err != nil {
			fmt.Printf("Error creating student %s (%s): %v\n", student.Name, student.StudentNumber, err)
		} else {
			successCount++
		}
	}

	fmt.Printf("\nSeed completed! Successfully added %d/%d students.\n", successCount, len(names))
}
