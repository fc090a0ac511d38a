package schedule

// Topics is the fixed ordered rotation of article-summary subjects. The
// order is editorial policy; the scheduler walks it round-robin via the
// persisted cursor.
var Topics = []string{
	// Chronic diseases
	"diabetes prevention and management",
	"heart disease and cardiovascular health",
	"hypertension and blood pressure control",
	"stroke prevention and recovery",
	"asthma and respiratory health",
	"COPD chronic obstructive pulmonary disease",
	"arthritis and joint health",
	"osteoporosis and bone health",
	"kidney disease and renal health",
	"liver disease and hepatic health",

	// Cancer
	"cancer prevention and screening",
	"breast cancer awareness",
	"lung cancer screening",
	"colorectal cancer prevention",
	"skin cancer and melanoma",
	"prostate cancer screening",

	// Mental health
	"depression and mental health treatment",
	"anxiety disorders and coping strategies",
	"teen mental health and wellbeing",
	"stress management techniques",
	"addiction and substance abuse recovery",
	"PTSD and trauma recovery",
	"suicide prevention and mental health support",

	// Nutrition and diet
	"healthy eating and nutrition guidelines",
	"weight management and obesity prevention",
	"plant-based diets and health",
	"food allergies and intolerances",
	"vitamin and mineral deficiencies",
	"eating disorders awareness",

	// Physical activity
	"exercise benefits and recommendations",
	"fitness for different age groups",
	"injury prevention in sports",
	"physical therapy and rehabilitation",

	// Infectious diseases
	"flu prevention and vaccination",
	"COVID-19 updates and prevention",
	"pneumonia prevention and treatment",
	"tuberculosis awareness",
	"HIV AIDS prevention and treatment",
	"sexually transmitted infections prevention",
	"Lyme disease and tick prevention",

	// Vaccines and immunization
	"childhood vaccination schedule",
	"adult immunizations and boosters",
	"vaccine safety and efficacy",
	"travel vaccines and recommendations",

	// Women's health
	"maternal health and pregnancy",
	"prenatal care and childbirth",
	"menopause and hormone health",
	"PCOS polycystic ovary syndrome",
	"endometriosis awareness",
	"cervical cancer screening",

	// Men's health
	"prostate health screening",
	"testosterone and male health",
	"erectile dysfunction treatment",

	// Children's health
	"pediatric health and development",
	"childhood obesity prevention",
	"ADHD attention deficit disorder",
	"autism spectrum disorders",

	// Senior health
	"healthy aging and longevity",
	"Alzheimer's and dementia prevention",
	"fall prevention for seniors",
	"medication management for elderly",

	// Sleep
	"sleep disorders and insomnia",
	"sleep apnea treatment",
	"sleep hygiene and better rest",

	// Digestive health
	"IBS irritable bowel syndrome",
	"Crohn's disease and colitis",
	"acid reflux and GERD",
	"celiac disease and gluten",
	"food poisoning prevention",

	// Eyes, ears, teeth, skin
	"vision health and eye exams",
	"hearing loss prevention",
	"cataracts and glaucoma",
	"oral health and dental hygiene",
	"gum disease prevention",
	"eczema and dermatitis",
	"acne treatment options",

	// Emergency and safety
	"first aid basics",
	"CPR and emergency response",
	"poisoning prevention",

	// Public health
	"antibiotic resistance and superbugs",
	"disease outbreak monitoring",
	"environmental health hazards",
	"air quality and respiratory health",
	"water safety and contamination",
	"climate change and health impacts",
}
