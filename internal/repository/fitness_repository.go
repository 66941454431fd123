package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saniya-gs/health-recommendation-system/internal/model"
)

// FitnessRepo stores fitness profiles and the plans generated for them.
type FitnessRepo struct {
	db *sql.DB
}

func NewFitnessRepo(db *sql.DB) *FitnessRepo { return &FitnessRepo{db: db} }

// CreateProfile inserts a fitness profile and returns its ID.
func (r *FitnessRepo) CreateProfile(ctx context.Context, p *model.FitnessProfile) (uint64, error) {
	conditions, err := jsonColumn(p.MedicalConditions)
	if err != nil {
		return 0, err
	}
	restrictions, err := jsonColumn(p.DietaryRestrictions)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO fitness_profiles
		 (user_id, age, gender, height, weight, activity_level,
		  fitness_goals, medical_conditions, dietary_restrictions)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Age, p.Gender, p.Height, p.Weight, p.ActivityLevel,
		p.FitnessGoals, conditions, restrictions)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	p.ID = uint64(id)
	return p.ID, nil
}

// SavePlans writes the diet plan and the exercise routine atomically.
func (r *FitnessRepo) SavePlans(ctx context.Context, diet *model.DietPlan, routine *model.ExerciseRoutine) error {
	macros, err := jsonColumn(diet.Macronutrients)
	if err != nil {
		return err
	}
	meals, err := jsonColumn(diet.MealPlan)
	if err != nil {
		return err
	}
	exercises, err := jsonColumn(routine.Exercises)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO diet_plans
		 (user_id, fitness_profile_id, plan_name, plan_type,
		  daily_calories, macronutrients, meal_plan, duration_weeks)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		diet.UserID, diet.FitnessProfileID, diet.PlanName, diet.PlanType,
		diet.DailyCalories, macros, meals, diet.DurationWeeks)
	if err != nil {
		return fmt.Errorf("insert diet plan: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		diet.ID = uint64(id)
	}

	res, err = tx.ExecContext(ctx,
		`INSERT INTO exercise_routines
		 (user_id, fitness_profile_id, routine_name, routine_type,
		  exercises, duration_minutes, difficulty_level, frequency_per_week)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		routine.UserID, routine.FitnessProfileID, routine.RoutineName, routine.RoutineType,
		exercises, routine.DurationMinutes, routine.DifficultyLevel, routine.FrequencyPerWeek)
	if err != nil {
		return fmt.Errorf("insert exercise routine: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		routine.ID = uint64(id)
	}
	return tx.Commit()
}
