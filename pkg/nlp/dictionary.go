package nlp

// KnownSkills — словарь навыков для извлечения из свободного текста резюме.
// Хранится в нормализованном виде; multi-word фразы матчатся целиком.
// Curated список, достаточный для технических резюме; расширяется по мере надобности.
var KnownSkills = []string{
	"go", "golang", "python", "java", "kotlin", "scala", "rust", "c", "c++",
	"c#", "ruby", "php", "swift", "javascript", "typescript", "sql", "nosql",
	"html", "css", "react", "angular", "vue", "node.js", "django", "flask",
	"fastapi", "spring", "spring boot", "gin", "fiber", "grpc", "graphql",
	"rest", "rest api", "postgres", "postgresql", "mysql", "sqlite", "mongodb",
	"redis", "kafka", "rabbitmq", "elasticsearch", "clickhouse", "docker",
	"kubernetes", "k8s", "terraform", "ansible", "helm", "aws", "gcp", "azure",
	"linux", "git", "ci cd", "jenkins", "gitlab ci", "github actions",
	"prometheus", "grafana", "nginx", "machine learning", "deep learning",
	"pandas", "numpy", "pytorch", "tensorflow", "nlp", "airflow", "spark",
	"hadoop", "etl", "microservices", "agile", "scrum",
}

// TitleMarkers — токены, по которым строка резюме распознаётся как должность.
var TitleMarkers = map[string]bool{
	"engineer": true, "developer": true, "programmer": true, "architect": true,
	"analyst": true, "scientist": true, "manager": true, "lead": true,
	"administrator": true, "consultant": true, "designer": true, "devops": true,
	"sre": true, "qa": true, "tester": true, "intern": true,
	"разработчик": true, "инженер": true, "программист": true,
	"аналитик": true, "архитектор": true, "руководитель": true,
	"тестировщик": true, "стажер": true, "стажёр": true,
}
