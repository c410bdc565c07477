package quotes

import "github.com/julianstephens/fittrack/internal/models"

var fallbackQuotes = []models.Quote{
	{Text: "The only bad workout is the one that didn't happen.", Author: "Unknown", Tags: []string{"fitness", "motivational"}},
	{Text: "Success is the sum of small efforts repeated day in and day out.", Author: "Robert Collier", Tags: []string{"success", "inspirational"}},
	{Text: "Don't stop when you're tired. Stop when you're done.", Author: "Unknown", Tags: []string{"motivational", "perseverance"}},
	{Text: "Your body can stand almost anything. It's your mind you have to convince.", Author: "Unknown", Tags: []string{"fitness", "mental-strength"}},
	{Text: "The difference between try and triumph is a little umph.", Author: "Unknown", Tags: []string{"motivational", "success"}},
	{Text: "Strength doesn't come from what you can do. It comes from overcoming the things you thought you couldn't.", Author: "Rikki Rogers", Tags: []string{"strength", "inspirational"}},
	{Text: "The pain you feel today will be the strength you feel tomorrow.", Author: "Unknown", Tags: []string{"fitness", "perseverance"}},
	{Text: "Take care of your body. It's the only place you have to live.", Author: "Jim Rohn", Tags: []string{"health", "wisdom"}},
	{Text: "Push yourself because no one else is going to do it for you.", Author: "Unknown", Tags: []string{"motivational", "self-improvement"}},
	{Text: "You don't have to be extreme, just consistent.", Author: "Unknown", Tags: []string{"consistency", "wisdom"}},
	{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs", Tags: []string{"inspirational", "success"}},
	{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt", Tags: []string{"belief", "inspirational"}},
	{Text: "It's not about having time. It's about making time.", Author: "Unknown", Tags: []string{"time-management", "motivational"}},
	{Text: "Sweat is fat crying.", Author: "Unknown", Tags: []string{"fitness", "humor"}},
	{Text: "The body achieves what the mind believes.", Author: "Unknown", Tags: []string{"mindset", "fitness"}},
	{Text: "Fitness is not about being better than someone else. It's about being better than you used to be.", Author: "Khloe Kardashian", Tags: []string{"self-improvement", "fitness"}},
	{Text: "The only person you should try to be better than is the person you were yesterday.", Author: "Unknown", Tags: []string{"self-improvement", "wisdom"}},
	{Text: "Your health is an investment, not an expense.", Author: "Unknown", Tags: []string{"health", "wisdom"}},
	{Text: "Rome wasn't built in a day, but they worked on it every single day.", Author: "Unknown", Tags: []string{"consistency", "perseverance"}},
	{Text: "A one-hour workout is 4% of your day. No excuses.", Author: "Unknown", Tags: []string{"fitness", "time-management"}},
}

var motivationalFacts = []string{
	"Regular exercise can increase your lifespan by up to 7 years.",
	"Just 30 minutes of exercise can boost your mood for up to 12 hours.",
	"Strength training can reverse age-related muscle loss.",
	"Exercise is as effective as medication for treating mild depression.",
	"Working out in the morning can increase productivity by 23%.",
	"Regular exercise improves memory and thinking skills.",
	"Physical activity reduces the risk of chronic disease by up to 50%.",
	"Exercise releases endorphins, your body's natural mood lifters.",
	"Consistent workouts improve sleep quality by up to 65%.",
	"Just 10 minutes of exercise can improve concentration.",
}

var availableTags = []string{
	"inspirational", "motivational", "sports", "wisdom", "success", "perseverance", "fitness",
	"health", "life", "happiness", "courage", "change", "leadership", "strength",
}
