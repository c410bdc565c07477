package exercises

import "github.com/julianstephens/fittrack/internal/models"

// fallbackTable is served when the remote catalogue is unreachable or empty.
var fallbackTable = map[string][]models.Exercise{
	"biceps": {
		{
			Name:         "Bicep Curls",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "biceps",
			Equipment:    "dumbbells",
			Instructions: "Stand with feet shoulder-width apart, curl dumbbells up to shoulders",
		},
		{
			Name:         "Hammer Curls",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "biceps",
			Equipment:    "dumbbells",
			Instructions: "Hold dumbbells with neutral grip, curl up keeping wrists straight",
		},
		{
			Name:         "Concentration Curls",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "biceps",
			Equipment:    "dumbbell",
			Instructions: "Sit down, rest elbow on inner thigh, curl dumbbell up",
		},
		{
			Name:         "Cable Curls",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "biceps",
			Equipment:    "cable machine",
			Instructions: "Attach straight bar to low pulley, curl up keeping elbows stationary",
		},
		{
			Name:         "Preacher Curls",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "biceps",
			Equipment:    "preacher bench",
			Instructions: "Rest arms on preacher bench, curl bar up slowly",
		},
		{
			Name:         "Chin-ups",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "biceps",
			Equipment:    "pull-up bar",
			Instructions: "Grip bar with palms facing you, pull yourself up until chin clears bar",
		},
	},
	"triceps": {
		{
			Name:         "Tricep Dips",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "triceps",
			Equipment:    "dip bars",
			Instructions: "Lower body by bending elbows, push back up to starting position",
		},
		{
			Name:         "Overhead Extension",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "triceps",
			Equipment:    "dumbbell",
			Instructions: "Hold dumbbell overhead, lower behind head, extend back up",
		},
		{
			Name:         "Close-Grip Push-ups",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "triceps",
			Equipment:    "body weight",
			Instructions: "Place hands close together, lower body keeping elbows close to sides",
		},
		{
			Name:         "Tricep Kickbacks",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "triceps",
			Equipment:    "dumbbells",
			Instructions: "Bend forward, extend arm back keeping upper arm stationary",
		},
		{
			Name:         "Skull Crushers",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "triceps",
			Equipment:    "barbell",
			Instructions: "Lie on bench, lower bar to forehead, extend back up",
		},
		{
			Name:         "Diamond Push-ups",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "triceps",
			Equipment:    "body weight",
			Instructions: "Form diamond with hands, perform push-ups",
		},
	},
	"chest": {
		{
			Name:         "Push-ups",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "chest",
			Equipment:    "body weight",
			Instructions: "Lower body until chest nearly touches floor, push back up",
		},
		{
			Name:         "Bench Press",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "chest",
			Equipment:    "barbell",
			Instructions: "Lower bar to chest, press up until arms are extended",
		},
		{
			Name:         "Chest Flyes",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "chest",
			Equipment:    "dumbbells",
			Instructions: "Lie on bench, lower dumbbells out to sides, bring back together",
		},
		{
			Name:         "Incline Press",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "chest",
			Equipment:    "barbell",
			Instructions: "On incline bench, press bar up from upper chest",
		},
		{
			Name:         "Cable Crossover",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "chest",
			Equipment:    "cable machine",
			Instructions: "Stand between cables, bring handles together in front of chest",
		},
		{
			Name:         "Dumbbell Press",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "chest",
			Equipment:    "dumbbells",
			Instructions: "Lie on bench, press dumbbells up until arms extended",
		},
	},
	"back": {
		{
			Name:         "Pull-ups",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "back",
			Equipment:    "pull-up bar",
			Instructions: "Grip bar with palms away, pull up until chin clears bar",
		},
		{
			Name:         "Bent-Over Rows",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "back",
			Equipment:    "barbell",
			Instructions: "Bend forward, pull bar to lower chest, lower with control",
		},
		{
			Name:         "Lat Pulldowns",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "back",
			Equipment:    "cable machine",
			Instructions: "Pull bar down to upper chest, return with control",
		},
		{
			Name:         "Deadlifts",
			Type:         "strength",
			Difficulty:   "advanced",
			Muscle:       "back",
			Equipment:    "barbell",
			Instructions: "Lift bar from ground to standing position keeping back straight",
		},
		{
			Name:         "T-Bar Rows",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "back",
			Equipment:    "t-bar",
			Instructions: "Pull bar to chest while maintaining bent-over position",
		},
		{
			Name:         "Face Pulls",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "back",
			Equipment:    "cable machine",
			Instructions: "Pull rope attachment towards face, spreading hands apart",
		},
	},
	"legs": {
		{
			Name:         "Squats",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "legs",
			Equipment:    "barbell",
			Instructions: "Lower body as if sitting back into chair, push back up through heels",
		},
		{
			Name:         "Lunges",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "legs",
			Equipment:    "body weight",
			Instructions: "Step forward, lower back knee towards ground, push back to start",
		},
		{
			Name:         "Leg Press",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "legs",
			Equipment:    "machine",
			Instructions: "Push platform away with feet, lower with control",
		},
		{
			Name:         "Calf Raises",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "legs",
			Equipment:    "body weight",
			Instructions: "Raise up onto toes, lower back down with control",
		},
		{
			Name:         "Romanian Deadlifts",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "legs",
			Equipment:    "barbell",
			Instructions: "Lower bar along legs keeping back straight, feel stretch in hamstrings",
		},
		{
			Name:         "Leg Curls",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "legs",
			Equipment:    "machine",
			Instructions: "Curl legs up towards glutes, lower with control",
		},
	},
	"shoulders": {
		{
			Name:         "Shoulder Press",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "shoulders",
			Equipment:    "dumbbells",
			Instructions: "Press dumbbells overhead until arms fully extended",
		},
		{
			Name:         "Lateral Raises",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "shoulders",
			Equipment:    "dumbbells",
			Instructions: "Raise dumbbells out to sides until parallel with ground",
		},
		{
			Name:         "Front Raises",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "shoulders",
			Equipment:    "dumbbells",
			Instructions: "Raise dumbbells in front to shoulder height",
		},
		{
			Name:         "Shrugs",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "shoulders",
			Equipment:    "dumbbells",
			Instructions: "Raise shoulders up towards ears, lower with control",
		},
		{
			Name:         "Arnold Press",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "shoulders",
			Equipment:    "dumbbells",
			Instructions: "Start with palms facing you, rotate and press overhead",
		},
		{
			Name:         "Upright Rows",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "shoulders",
			Equipment:    "barbell",
			Instructions: "Pull bar up along body to chin height, lower with control",
		},
	},
	"abs": {
		{
			Name:         "Crunches",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "abs",
			Equipment:    "body weight",
			Instructions: "Lift shoulders off ground, contract abs, lower with control",
		},
		{
			Name:         "Planks",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "abs",
			Equipment:    "body weight",
			Instructions: "Hold body in straight line from head to heels",
		},
		{
			Name:         "Bicycle Crunches",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "abs",
			Equipment:    "body weight",
			Instructions: "Alternate bringing opposite elbow to knee in cycling motion",
		},
		{
			Name:         "Leg Raises",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "abs",
			Equipment:    "body weight",
			Instructions: "Raise legs up while lying on back, lower without touching ground",
		},
		{
			Name:         "Russian Twists",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "abs",
			Equipment:    "body weight",
			Instructions: "Sit with feet elevated, rotate torso side to side",
		},
		{
			Name:         "Mountain Climbers",
			Type:         "cardio",
			Difficulty:   "beginner",
			Muscle:       "abs",
			Equipment:    "body weight",
			Instructions: "In plank position, alternate bringing knees to chest rapidly",
		},
	},
	"quadriceps": {
		{
			Name:         "Squats",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "quadriceps",
			Equipment:    "barbell",
			Instructions: "Lower body keeping chest up, push back through heels",
		},
		{
			Name:         "Leg Extensions",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "quadriceps",
			Equipment:    "machine",
			Instructions: "Extend legs until straight, lower with control",
		},
		{
			Name:         "Bulgarian Split Squats",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "quadriceps",
			Equipment:    "dumbbells",
			Instructions: "Place rear foot on bench, lower into lunge position",
		},
	},
	"hamstrings": {
		{
			Name:         "Romanian Deadlifts",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "hamstrings",
			Equipment:    "barbell",
			Instructions: "Lower bar with straight legs, feel stretch in hamstrings",
		},
		{
			Name:         "Leg Curls",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "hamstrings",
			Equipment:    "machine",
			Instructions: "Curl legs towards glutes, squeeze at top",
		},
		{
			Name:         "Good Mornings",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "hamstrings",
			Equipment:    "barbell",
			Instructions: "Hinge at hips keeping back straight, return to standing",
		},
	},
	"glutes": {
		{
			Name:         "Hip Thrusts",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "glutes",
			Equipment:    "barbell",
			Instructions: "Drive hips up squeezing glutes at top, lower with control",
		},
		{
			Name:         "Bulgarian Split Squats",
			Type:         "strength",
			Difficulty:   "intermediate",
			Muscle:       "glutes",
			Equipment:    "dumbbells",
			Instructions: "Rear foot elevated, lunge down and drive through front heel",
		},
		{
			Name:         "Glute Bridges",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "glutes",
			Equipment:    "body weight",
			Instructions: "Lie on back, drive hips up, squeeze glutes at top",
		},
	},
	"calves": {
		{
			Name:         "Standing Calf Raises",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "calves",
			Equipment:    "machine",
			Instructions: "Raise up onto toes, lower below parallel",
		},
		{
			Name:         "Seated Calf Raises",
			Type:         "strength",
			Difficulty:   "beginner",
			Muscle:       "calves",
			Equipment:    "machine",
			Instructions: "While seated, raise heels up, lower with control",
		},
	},
}
