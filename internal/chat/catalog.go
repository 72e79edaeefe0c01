// Package chat ships the built-in room catalog. The catalog is fixed: rooms
// are never created or destroyed at runtime.
package chat

func defaultCatalog() []*Room {
	return []*Room{
		newRoom("general", "General", "Open discussion about anything", "General"),
		newRoom("random", "Random", "Off-topic and water-cooler talk", "General"),
		newRoom("introductions", "Introductions", "Say hello and meet other members", "General"),
		newRoom("tech", "Technology", "Hardware, software, and everything between", "Technology"),
		newRoom("coding", "Coding", "Programming help and code review", "Technology"),
		newRoom("gaming", "Gaming", "Video games, board games, and sessions", "Entertainment"),
		newRoom("music", "Music", "Share and discuss music of all genres", "Entertainment"),
		newRoom("movies", "Movies & TV", "Films, series, and what to watch next", "Entertainment"),
		newRoom("books", "Books", "Reading recommendations and book talk", "Entertainment"),
		newRoom("sports", "Sports", "Matches, teams, and fitness events", "Lifestyle"),
		newRoom("food", "Food & Cooking", "Recipes, restaurants, and kitchen wins", "Lifestyle"),
		newRoom("travel", "Travel", "Destinations, tips, and trip reports", "Lifestyle"),
		newRoom("fitness", "Fitness", "Training, routines, and healthy habits", "Lifestyle"),
		newRoom("science", "Science", "Discoveries and research discussion", "Knowledge"),
		newRoom("news", "News", "Current events and headlines", "Knowledge"),
		newRoom("help", "Help Desk", "Questions about using the chat", "Support"),
	}
}
