package simulation

import "NudgePrototype/internal/models"

var names = []string{"Alex", "Sam", "Casey", "Jordan", "Taylor", "Morgan", "Riley", "Avery"}

var vibes = []string{"Chill", "Adventurous", "Creative", "Intellectual", "Funny", "Mysterious"}

var interests = []string{"Coffee", "Music", "Photography", "Reading", "Art", "Hiking", "Cooking", "Gaming"}

// 팝오버에 표시되는 추천 활동, 사용자 인덱스로 선택
var popoverActivities = []models.Activity{
	{Activity: "Grab coffee at the corner café", Location: "Blue Bottle Coffee", Reason: "You both love artisanal coffee and cozy conversations", Emoji: "☕"},
	{Activity: "Check out the street art in the alley", Location: "Mission District", Reason: "Your shared love for art and photography", Emoji: "🎨"},
	{Activity: "Browse books at the local bookstore", Location: "City Lights Books", Reason: "You both enjoy literary discussions", Emoji: "📚"},
	{Activity: "Take photos at the rooftop garden", Location: "Salesforce Park", Reason: "Perfect for your photography interests", Emoji: "📸"},
}

// 전체 프로필의 추천 활동 (앞에서부터 2~3개)
var profileActivities = []models.Activity{
	{Activity: "Coffee & conversation at Blue Bottle", Location: "Hayes Valley", Reason: "You both appreciate quality coffee and meaningful chats", Emoji: "☕"},
	{Activity: "Explore the street art murals", Location: "Mission District", Reason: "Your shared creative interests make this perfect", Emoji: "🎨"},
	{Activity: "Browse vintage books together", Location: "Green Apple Books", Reason: "Both of you love discovering hidden literary gems", Emoji: "📚"},
}

var bios = []string{
	"Love exploring the city and finding hidden gems. Always up for good conversations over coffee!",
	"Creative soul who enjoys capturing moments and creating memories. Let's discover something new together.",
	"Bookworm by day, music lover by night. Looking for someone to share adventures with.",
	"Life's too short for boring conversations. Let's talk about everything and nothing.",
	"Passionate about art, culture, and connecting with interesting people in this amazing city.",
}

var recentActivities = []string{
	"Just finished reading an amazing book at the park",
	"Discovered a new coffee shop with incredible pastries",
	"Attended a local art exhibition last weekend",
	"Went on a photo walk around the neighborhood",
	"Tried a new restaurant in the Mission District",
}

var chatReplies = []string{
	"Nice to meet you!",
	"Cool, what brings you to this area?",
	"I'm just grabbing coffee nearby ☕",
	"Love the vibe here!",
	"Are you from around here?",
	"This place is always so busy!",
	"Hope you're having a good day! 😊",
}

// ChatGreeting opens every chat session.
const ChatGreeting = "Hey! 👋"
