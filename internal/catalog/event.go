package catalog

import "github.com/shopspring/decimal"

func numeric(id int, text string, cost int64, min, max int, suffix string) Question {
	return Question{
		ID:      id,
		Text:    text,
		Kind:    KindNumeric,
		Cost:    decimal.NewFromInt(cost),
		Numeric: &NumericDomain{Min: min, Max: max, Suffix: suffix},
	}
}

func choice(id int, text string, cost int64, options ...string) Question {
	return Question{
		ID:      id,
		Text:    text,
		Kind:    KindChoice,
		Cost:    decimal.NewFromInt(cost),
		Options: options,
	}
}

// Event returns the question catalog for this year's game.
func Event() *Catalog {
	return New([]Question{
		numeric(1, "How long will Charlie Puth's rendition of the National Anthem last from first note to last?", 1, 0, 500, "seconds"),
		choice(2, "Which team will win the coin toss?", 1, "Seahawks", "Patriots"),
		choice(3, "Which team will make the first touchdown?", 2, "Seahawks", "Patriots"),
		choice(4, "Which team will make the first field goal?", 2, "Seahawks", "Patriots"),
		choice(5, "What animal will appear first in the advertisements following kickoff?", 1,
			"Dog", "Cat", "Horse", "Lizard", "Snake", "Lion", "Elephant", "Monkey/Chimp",
			"Giraffe", "Fish", "Zebra", "Mouse", "Duck/Goose", "Cow", "Bird", "Other"),
		choice(6, "What will be the first beverage commercial shown following kickoff?", 1,
			"Budweiser", "Miller", "Corona", "Coors", "Pepsi", "Coke", "Fanta", "Sprite", "Other"),
		choice(7, "What will be the first automobile commercial shown following kickoff?", 1,
			"Toyota", "Jeep", "GMC", "Ford", "Hyundai", "Honda", "Kia", "BMW", "Mercedes",
			"VW", "Volvo", "Tesla", "Chevy", "Other"),
		choice(8, "What will be the first AI commercial shown following kickoff?", 1,
			"OpenAI/ChatGPT", "Anthropic/Claude", "Google/Gemini", "None", "Other"),
		numeric(9, "What will the Patriots' score be at halftime?", 2, 1, 100, ""),
		numeric(10, "What will the Seahawks' score be at halftime?", 2, 1, 100, ""),
		choice(11, "Will Bad Bunny open with Tití Me Preguntó?", 1, "Yes", "No"),
		choice(12, "Will Bad Bunny switch to English at any point during the halftime show?", 1, "Yes", "No"),
		choice(13, "Will Bad Bunny have a natively English-speaking guest appear in his show?", 1, "Yes", "No", "No Guest"),
		choice(14, "Will Bad Bunny make a political statement about ICE during the halftime show?", 1, "Yes", "No"),
		choice(15, "Will Bad Bunny's performance feature pyrotechnics?", 1, "Yes", "No"),
		choice(16, "Which insurance company will have the first commercial after the halftime show?", 1,
			"Allstate", "Geico", "Progressive", "Farmers", "Liberty Mutual", "USAA", "Other"),
		choice(17, "The first commercial featuring a child after the halftime show will be for a:", 1,
			"Food", "Beverage", "Insurance", "Car", "Software", "Phone/Internet Service",
			"Body/Beauty Product", "Movie/TV Show", "Restaurant", "Other"),
		choice(18, "Who will be leading at the 2-minute warning of Q4?", 2, "Seahawks", "Patriots"),
		numeric(19, "What will the Patriots' final score be?", 2, 1, 100, ""),
		numeric(20, "What will the Seahawks' final score be?", 2, 1, 100, ""),
		choice(21, "Who will win the game?", 2, "Seahawks", "Patriots"),
		choice(22, "What color Gatorade will the winning team dump on the coach?", 1,
			"Blue", "Green", "Red", "Orange", "Yellow", "Purple", "None"),
		choice(23, "Who will the winning QB thank first after the game?", 1,
			"Their wife/kids", "Their parents", "God", "Their team", "Their coach", "The fans"),
	})
}
