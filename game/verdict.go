package game

// Verdict is the game over caption for score
func Verdict(score int) string {
	switch {
	case score == 0:
		return "MY GRANDMA PLAYS BETTER"
	case score < 10:
		return "ARE YOU EVEN TRYING?"
	case score < 30:
		return "NOT BAD, BUT NOT GREAT"
	case score < 50:
		return "GETTING THERE... SLOWLY"
	case score < 100:
		return "DJ SNAKE IN THE HOUSE!"
	default:
		return "GODLIKE STATUS"
	}
}
