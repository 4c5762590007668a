package property

// Observer receives trial events while a property runs.
type Observer interface {
	RunStarted(name string, seed uint64)
	TrialRejected(name, constraint string)
	TrialPassed(name string)
	TrialFailed(name string, failure Failure)
	RunFinished(result Result)
}

// BaseObserver ignores every event. Embed it to implement only some hooks.
type BaseObserver struct{}

func (BaseObserver) RunStarted(string, uint64)    {}
func (BaseObserver) TrialRejected(string, string) {}
func (BaseObserver) TrialPassed(string)           {}
func (BaseObserver) TrialFailed(string, Failure)  {}
func (BaseObserver) RunFinished(Result)           {}

type observers []Observer

func (o observers) runStarted(name string, seed uint64) {
	for _, obs := range o {
		obs.RunStarted(name, seed)
	}
}

func (o observers) trialRejected(name, constraint string) {
	for _, obs := range o {
		obs.TrialRejected(name, constraint)
	}
}

func (o observers) trialPassed(name string) {
	for _, obs := range o {
		obs.TrialPassed(name)
	}
}

func (o observers) trialFailed(name string, failure Failure) {
	for _, obs := range o {
		obs.TrialFailed(name, failure)
	}
}

func (o observers) runFinished(result Result) {
	for _, obs := range o {
		obs.RunFinished(result)
	}
}
