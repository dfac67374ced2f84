package lessons

import "progress-service/internal/models"

// DefaultCatalog is the built-in vocabulary catalog. Production deployments
// can swap in a catalog loaded from the content pipeline; the engine only
// depends on the Registry accessors.
func DefaultCatalog() *Registry {
	return NewRegistry([]*models.Lesson{
		greetingsLesson(),
		numbersLesson(),
		foodLesson(),
		phrasesLesson(),
	})
}

func greetingsLesson() *models.Lesson {
	cards := []models.VocabCard{
		{AudioKey: "sr-greetings-zdravo", SourceText: "Hello", TargetText: "Zdravo"},
		{AudioKey: "sr-greetings-dobro-jutro", SourceText: "Good morning", TargetText: "Dobro jutro"},
		{AudioKey: "sr-greetings-dobar-dan", SourceText: "Good day", TargetText: "Dobar dan"},
		{AudioKey: "sr-greetings-dobro-vece", SourceText: "Good evening", TargetText: "Dobro veče"},
		{AudioKey: "sr-greetings-laku-noc", SourceText: "Good night", TargetText: "Laku noć"},
		{AudioKey: "sr-greetings-dovidjenja", SourceText: "Goodbye", TargetText: "Doviđenja"},
		{AudioKey: "sr-greetings-hvala", SourceText: "Thank you", TargetText: "Hvala"},
		{AudioKey: "sr-greetings-molim", SourceText: "Please / You're welcome", TargetText: "Molim"},
		{AudioKey: "sr-greetings-izvinite", SourceText: "Excuse me", TargetText: "Izvinite"},
		{AudioKey: "sr-greetings-kako-ste", SourceText: "How are you?", TargetText: "Kako ste?"},
	}
	return &models.Lesson{
		ID:          "sr-greetings",
		Title:       "Greetings and Politeness",
		Language:    "serbian",
		Order:       1,
		Cards:       cards,
		ActivityIDs: []string{"matching", "quiz"},
		Config:      standardConfig(len(cards), true, 4),
	}
}

func numbersLesson() *models.Lesson {
	cards := []models.VocabCard{
		{AudioKey: "sr-numbers-jedan", SourceText: "One", TargetText: "Jedan"},
		{AudioKey: "sr-numbers-dva", SourceText: "Two", TargetText: "Dva"},
		{AudioKey: "sr-numbers-tri", SourceText: "Three", TargetText: "Tri"},
		{AudioKey: "sr-numbers-cetiri", SourceText: "Four", TargetText: "Četiri"},
		{AudioKey: "sr-numbers-pet", SourceText: "Five", TargetText: "Pet"},
		{AudioKey: "sr-numbers-sest", SourceText: "Six", TargetText: "Šest"},
		{AudioKey: "sr-numbers-sedam", SourceText: "Seven", TargetText: "Sedam"},
		{AudioKey: "sr-numbers-osam", SourceText: "Eight", TargetText: "Osam"},
		{AudioKey: "sr-numbers-devet", SourceText: "Nine", TargetText: "Devet"},
		{AudioKey: "sr-numbers-deset", SourceText: "Ten", TargetText: "Deset"},
	}
	return &models.Lesson{
		ID:          "sr-numbers",
		Title:       "Numbers 1-10",
		Language:    "serbian",
		Order:       2,
		Cards:       cards,
		ActivityIDs: []string{"quiz"},
		Config:      standardConfig(len(cards), true, 5),
	}
}

func foodLesson() *models.Lesson {
	cards := []models.VocabCard{
		{AudioKey: "sr-food-hleb", SourceText: "Bread", TargetText: "Hleb"},
		{AudioKey: "sr-food-voda", SourceText: "Water", TargetText: "Voda"},
		{AudioKey: "sr-food-kafa", SourceText: "Coffee", TargetText: "Kafa"},
		{AudioKey: "sr-food-mleko", SourceText: "Milk", TargetText: "Mleko"},
		{AudioKey: "sr-food-sir", SourceText: "Cheese", TargetText: "Sir"},
		{AudioKey: "sr-food-meso", SourceText: "Meat", TargetText: "Meso"},
		{AudioKey: "sr-food-riba", SourceText: "Fish", TargetText: "Riba"},
		{AudioKey: "sr-food-jabuka", SourceText: "Apple", TargetText: "Jabuka"},
	}
	return &models.Lesson{
		ID:          "sr-food",
		Title:       "Food and Drink",
		Language:    "serbian",
		Order:       3,
		Cards:       cards,
		ActivityIDs: []string{"matching", "quiz"},
		Config:      standardConfig(len(cards), true, 4),
	}
}

// phrasesLesson is listen-only: no practice section, so completion comes
// from engagement and time alone.
func phrasesLesson() *models.Lesson {
	cards := []models.VocabCard{
		{AudioKey: "sr-phrases-ne-razumem", SourceText: "I don't understand", TargetText: "Ne razumem"},
		{AudioKey: "sr-phrases-govorite-li-engleski", SourceText: "Do you speak English?", TargetText: "Govorite li engleski?"},
		{AudioKey: "sr-phrases-koliko-kosta", SourceText: "How much does it cost?", TargetText: "Koliko košta?"},
		{AudioKey: "sr-phrases-gde-je", SourceText: "Where is...?", TargetText: "Gde je...?"},
		{AudioKey: "sr-phrases-pomoc", SourceText: "Help!", TargetText: "Upomoć!"},
		{AudioKey: "sr-phrases-ziveli", SourceText: "Cheers!", TargetText: "Živeli!"},
	}
	return &models.Lesson{
		ID:       "sr-phrases",
		Title:    "Survival Phrases",
		Language: "serbian",
		Order:    4,
		Cards:    cards,
		Config:   standardConfig(len(cards), false, 3),
	}
}
