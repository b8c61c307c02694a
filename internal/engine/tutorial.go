package engine

// TutorialStep is one card of the first-run walkthrough.
type TutorialStep struct {
	Title string
	Body  string
}

var tutorialSteps = []TutorialStep{
	{
		Title: "Welcome to Bun Bakery!",
		Body:  "In this game, you'll be making burgers to satisfy customers.\nFollow the steps to learn how to play.",
	},
	{
		Title: "Ingredients",
		Body:  "These are your ingredients on the left.\nPick them with the number keys to build your burger.",
	},
	{
		Title: "Cooking Stations",
		Body:  "Use these stations to improve your ingredients.\nThe grill cooks patties and toasts buns.\nThe cutting board slices vegetables.",
	},
	{
		Title: "Orders",
		Body:  "Each customer will have a specific burger order.\nMake burgers according to the order shown here.",
	},
	{
		Title: "Time Limit",
		Body:  "You have a limited time to complete each order.\nFaster completion earns time bonus points!",
	},
	{
		Title: "Earn Money",
		Body:  "Satisfied customers leave tips.\nUse money to unlock new ingredients and upgrades.",
	},
	{
		Title: "Ready to Begin?",
		Body:  "Let's make some delicious burgers!\nGood luck!",
	},
}

// Tutorial returns the current step plus its position, valid only in the
// tutorial state.
func (e *Engine) Tutorial() (step TutorialStep, index, total int) {
	if e.tutorialStep < len(tutorialSteps) {
		step = tutorialSteps[e.tutorialStep]
	}
	return step, e.tutorialStep, len(tutorialSteps)
}

// AdvanceTutorial moves to the next card. Finishing the last card marks
// the tutorial completed, persists, and starts the run.
func (e *Engine) AdvanceTutorial() bool {
	if e.state != StateTutorial {
		return false
	}

	e.tutorialStep++
	if e.tutorialStep >= len(tutorialSteps) {
		e.progress.TutorialCompleted = true
		e.persist()
		e.log.Info("run %s: tutorial completed", e.runID)
		e.startRun()
	}
	return true
}
