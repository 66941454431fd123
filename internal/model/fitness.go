package model

// FitnessProfile is a row of `fitness_profiles`.  MedicalConditions and
// DietaryRestrictions hold arbitrary JSON and are NULL when nil.
type FitnessProfile struct {
    ID                  uint64
    UserID              uint64
    Age                 *int
    Gender              *string
    Height              *float64
    Weight              *float64
    ActivityLevel       *string
    FitnessGoals        *string
    MedicalConditions   any
    DietaryRestrictions any
}

// Default names for plans generated from fitness recommendations.
const (
    DietPlanName        = "Personalized Diet Plan"
    DietPlanType        = "Balanced"
    DefaultDietWeeks    = 4
    ExerciseRoutineName = "Personalized Exercise Routine"
    ExerciseRoutineType = "Mixed"
)

// DietPlan is a row of `diet_plans`.
type DietPlan struct {
    ID               uint64
    UserID           uint64
    FitnessProfileID *uint64
    PlanName         string
    PlanType         string
    DailyCalories    *float64
    Macronutrients   any
    MealPlan         any
    DurationWeeks    int
}

// ExerciseRoutine is a row of `exercise_routines`.
type ExerciseRoutine struct {
    ID               uint64
    UserID           uint64
    FitnessProfileID *uint64
    RoutineName      string
    RoutineType      string
    Exercises        any
    DurationMinutes  *int
    DifficultyLevel  *string
    FrequencyPerWeek *int
}
