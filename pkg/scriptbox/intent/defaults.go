package intent

// DefaultTables returns the built-in chatbot tables. Topic order is the
// matching order.
func DefaultTables() Tables {
	return Tables{
		GreetingTriggers:  []string{"hello", "hi", "greetings", "sup", "what's up", "hey"},
		GreetingResponses: []string{"hi", "hey", "hello", "I am glad! You are talking to me"},
		FarewellTriggers:  []string{"bye", "goodbye", "see you later", "farewell", "quit"},
		FarewellResponses: []string{
			"Goodbye! Have a great day!",
			"See you later!",
			"Farewell! It was nice chatting.",
		},
		Topics: []Topic{
			{
				ID:       "wellbeing",
				Triggers: []string{"how are you", "how are you doing"},
				Responses: []string{
					"I'm just a program, but I'm functioning perfectly!",
					"As an AI, I don't have feelings, but I'm ready to assist you!",
					"All good here! How can I help you?",
				},
			},
			{
				ID:       "name",
				Triggers: []string{"what is your name", "your name"},
				Responses: []string{
					"I don't have a name, I'm a chatbot.",
					"You can call me Chatbot.",
					"I am an AI assistant, designed to help you.",
				},
			},
			{
				ID:       "creator",
				Triggers: []string{"who created you", "who made you"},
				Responses: []string{
					"I was created by a large language model.",
					"I am a product of Google.",
					"My creators are the engineers at Google.",
				},
			},
			{
				ID:       "capabilities",
				Triggers: []string{"what can you do", "your capabilities", "help"},
				Responses: []string{
					"I can answer generic questions based on my knowledge base.",
					"I can chat with you and provide information on various topics I've been trained on.",
					"Ask me anything general, and I'll do my best to respond!",
				},
			},
			{
				ID:       "weather",
				Triggers: []string{"weather", "temperature"},
				Responses: []string{
					"I cannot provide real-time weather information as I am not connected to live data feeds.",
					"For current weather updates, please check a dedicated weather application.",
				},
			},
			{
				ID:       "time",
				Triggers: []string{"time", "current time"},
				Responses: []string{
					"I do not have access to real-time clock data.",
					"I cannot tell the exact current time.",
				},
			},
			{
				ID:       "thanks",
				Triggers: []string{"thank you", "thanks"},
				Responses: []string{
					"You're welcome!",
					"No problem!",
					"Glad I could help!",
					"Happy to assist!",
				},
			},
		},
		FallbackResponses: []string{
			"I'm sorry, I don't understand that.",
			"Could you please rephrase that?",
			"I'm still learning. Can you try asking something else?",
			"That's an interesting query, but I don't have an answer for it right now.",
		},
	}
}
