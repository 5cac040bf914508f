package object

// Spawn tuning.
const (
	EnemyMinSpeed  = 1.5
	EnemySpeedSpan = 2.2

	enemyFirstShotMin    = 40
	enemyFirstShotJitter = 80
)

// DefaultSubjects are the labels enemies are drawn with.
var DefaultSubjects = []string{
	"OOPs", "PYTHON", "DBMS", "CYBER", "AWS", "IWP",
	"CLOUD", "CPP", "JAVA", "SOFTWARE", "COLLEGE",
}

// EnemySpawner creates enemies at the top of the field.
type EnemySpawner struct {
	subjects []string
	rng      Rand
}

// NewEnemySpawner creates a spawner drawing labels from subjects.
// An empty list falls back to DefaultSubjects.
func NewEnemySpawner(subjects []string, rng Rand) *EnemySpawner {
	if len(subjects) == 0 {
		subjects = DefaultSubjects
	}
	return &EnemySpawner{
		subjects: subjects,
		rng:      rng,
	}
}

// Next creates one enemy just above the top edge, at a random column with
// a random speed in [EnemyMinSpeed, EnemyMinSpeed+EnemySpeedSpan).
func (s *EnemySpawner) Next(b Bounds) *Enemy {
	x := s.rng.Float64() * max(b.Width-EnemyWidth, 0)
	speed := EnemyMinSpeed + s.rng.Float64()*EnemySpeedSpan
	subject := s.subjects[s.rng.Intn(len(s.subjects))]
	color := EnemyColors[s.rng.Intn(len(EnemyColors))]
	cooldown := enemyFirstShotMin + s.rng.Intn(enemyFirstShotJitter)

	return NewEnemy(x, -EnemyHeight, speed, subject, color, cooldown)
}
