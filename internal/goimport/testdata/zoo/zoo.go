package zoo

type Speaker interface {
	Speak() string
}

type Walker interface {
	Speaker
	Walk(steps int) int
}

type Animal struct {
	Name string
	legs int
}

func (a *Animal) Walk(steps int) int { return steps * a.legs }

func (a Animal) Speak() string { return "..." }

type Dog struct {
	Animal
	Tricks []string
	owner  *Keeper
}

func NewDog(name string, legs int) *Dog {
	return &Dog{Animal: Animal{Name: name, legs: legs}}
}

func (d *Dog) Speak() string { return "woof" }

func (d *Dog) fetch(times int64) bool { return times > 0 }

type Keeper struct {
	Name string
	dogs []*Dog
	Best *Dog
}

func NewKeeper() Keeper { return Keeper{} }

type Padded struct {
	_     int32
	Count int
	_     [4]byte
}

type empty interface{}

type Box[T any] struct {
	Value T
}
