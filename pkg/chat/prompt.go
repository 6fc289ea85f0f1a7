package chat

const (
	// Prompt precedes every read of user input.
	Prompt = "You: "
	// speaker labels every reply from the agent.
	speaker = "Frarold: "
	// farewell is printed once when the conversation ends.
	farewell = "Good talk."
)

// banner is printed on start-up when enabled. Art in the larryd3 font.
const banner = "\n" +
	`   ___                                   ___        __` + "\n" +
	` /'___\                                 /\_ \      /\ \` + "\n" +
	`/\ \__/  _ __     __      _ __    ___   \//\ \     \_\ \` + "\n" +
	"\\ \\ ,__\\/\\`'__\\ /'__`\\   /\\`'__\\ / __`\\   \\ \\ \\    /'_` \\" + "\n" +
	` \ \ \_/\ \ \/ /\ \L\.\_ \ \ \/ /\ \L\ \   \_\ \_ /\ \L\ \` + "\n" +
	`  \ \_\  \ \_\ \ \__/.\_\ \ \_\ \ \____/   /\____\\ \___,_\` + "\n" +
	`   \/_/   \/_/  \/__/\/_/  \/_/  \/___/    \/____/ \/__,_ /` + "\n" +
	"\n"
