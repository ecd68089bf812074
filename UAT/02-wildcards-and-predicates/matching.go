package matching

// Registrar demonstrates argument matching: literal specifiers, typed and
// untyped wildcards, predicates, and gomega matchers.
type Registrar interface {
	Enroll(name string, age int) error
	Lookup(id int) (string, error)
}

// Student pairs a name with an age for enrollment.
type Student struct {
	Name string
	Age  int
}

// EnrollAll enrolls every student in order and returns the names the
// registrar rejected.
func EnrollAll(reg Registrar, students []Student) []string {
	var rejected []string

	for _, student := range students {
		err := reg.Enroll(student.Name, student.Age)
		if err != nil {
			rejected = append(rejected, student.Name)
		}
	}

	return rejected
}
