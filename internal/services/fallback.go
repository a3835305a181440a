package services

import (
	"hash/fnv"
	"path/filepath"
	"strings"

	"github.com/gokulraj121/learn-it-faster/internal/models"
)

// ContentTypeClass is a coarse bucket used only to select fallback content.
type ContentTypeClass string

const (
	ClassResearch ContentTypeClass = "research"
	ClassBlog     ContentTypeClass = "blog"
	ClassWebsite  ContentTypeClass = "website"
	ClassGeneral  ContentTypeClass = "general"
)

// ClassifyContent derives the fallback bucket from the source kind and the
// file extension of the label. Never persisted.
func ClassifyContent(sourceType, label string) ContentTypeClass {
	switch sourceType {
	case models.SourceURL:
		return ClassWebsite
	case models.SourceText:
		return ClassBlog
	}

	switch strings.ToLower(filepath.Ext(label)) {
	case ".pdf":
		return ClassResearch
	default:
		return ClassGeneral
	}
}

var fallbackInfographics = map[ContentTypeClass]models.InfographicRecord{
	ClassResearch: {
		Title:   "Climate Change Impact Report",
		Summary: "This report analyzes the potential impacts of climate change on global ecosystems over the next century, with a focus on vulnerable regions.",
		KeyPoints: []string{
			"Global temperatures are projected to rise by 1.5-4.5°C by 2100",
			"Sea levels may rise by up to 1 meter, affecting coastal communities",
			"Extreme weather events will become more frequent and intense",
			"Biodiversity loss will accelerate, with up to 30% of species at risk",
		},
		Stats: []models.InfographicStat{
			{Label: "Temperature Increase (°C)", Value: 2.7},
			{Label: "Sea Level Rise (cm)", Value: 50},
			{Label: "Species at Risk (%)", Value: 30},
			{Label: "Economic Impact ($ Trillion)", Value: 5.4},
		},
	},
	ClassBlog: {
		Title:   "Emerging Technology Landscape",
		Summary: "Analysis of current technology trends and adoption rates across industries, with forecasts for the upcoming year.",
		KeyPoints: []string{
			"AI implementation increased by 63% across enterprise businesses",
			"Quantum computing research funding doubled to $2.5 billion",
			"Cybersecurity incidents rose by 32% compared to previous year",
			"Renewable energy tech saw cost reductions of 21% on average",
		},
		Stats: []models.InfographicStat{
			{Label: "AI Adoption Growth (%)", Value: 63},
			{Label: "5G Coverage (%)", Value: 42},
			{Label: "Cybersecurity Breaches (%)", Value: 32},
			{Label: "Cloud Migration (%)", Value: 78},
		},
	},
	ClassWebsite: {
		Title:   "Annual Business Performance Summary",
		Summary: "Overview of key business metrics and performance indicators for the fiscal year, highlighting growth areas and challenges.",
		KeyPoints: []string{
			"Revenue increased by 15% compared to previous year",
			"Customer acquisition costs decreased by 7%",
			"New market expansion achieved in 3 countries",
			"Product line diversification led to 22% more SKUs",
		},
		Stats: []models.InfographicStat{
			{Label: "Revenue Growth (%)", Value: 15},
			{Label: "Profit Margin (%)", Value: 23},
			{Label: "Customer Retention (%)", Value: 84},
			{Label: "Market Share (%)", Value: 12},
		},
	},
	ClassGeneral: {
		Title:   "National Education Performance Data",
		Summary: "Comprehensive analysis of educational outcomes and trends across different age groups, regions, and socioeconomic backgrounds.",
		KeyPoints: []string{
			"High school graduation rates increased to 86% nationally",
			"STEM education enrollment grew by 14% in the past five years",
			"Student debt average reached $37,500 per graduate",
			"Online learning platforms saw 340% growth in users",
		},
		Stats: []models.InfographicStat{
			{Label: "Graduation Rate (%)", Value: 86},
			{Label: "STEM Growth (%)", Value: 14},
			{Label: "Avg. Student Debt ($K)", Value: 37.5},
			{Label: "Teacher-Student Ratio", Value: 1.24},
		},
	},
}

var flashcardTopics = []string{
	"biology", "chemistry", "physics", "mathematics",
	"history", "literature", "computer science",
}

var fallbackFlashcards = map[string][]models.Flashcard{
	"biology": {
		{Question: "What is photosynthesis?", Answer: "The process by which green plants and some other organisms use sunlight to synthesize nutrients from carbon dioxide and water."},
		{Question: "What is cellular respiration?", Answer: "The process by which cells break down glucose and release energy in the form of ATP."},
		{Question: "What is the function of mitochondria?", Answer: "Often called the powerhouse of the cell, mitochondria generate most of the cell's supply of ATP, the energy currency of cells."},
		{Question: "What is DNA?", Answer: "Deoxyribonucleic acid, a self-replicating material present in nearly all living organisms as the main constituent of chromosomes."},
		{Question: "What are the four main types of tissue in the human body?", Answer: "Epithelial, connective, muscular, and nervous tissue."},
	},
	"chemistry": {
		{Question: "What is the periodic table?", Answer: "A tabular arrangement of chemical elements, organized by atomic number, electron configuration, and recurring chemical properties."},
		{Question: "What is an isotope?", Answer: "Variants of a particular chemical element which differ in neutron number but have the same number of protons."},
		{Question: "What is the pH scale?", Answer: "A logarithmic scale used to specify the acidity or basicity of an aqueous solution, ranging from 0 (most acidic) to 14 (most basic)."},
		{Question: "What is a catalyst?", Answer: "A substance that increases the rate of a chemical reaction without itself undergoing any permanent chemical change."},
		{Question: "What is a chemical bond?", Answer: "A lasting attraction between atoms, ions or molecules that enables the formation of chemical compounds."},
	},
	"physics": {
		{Question: "What is Newton's First Law of Motion?", Answer: "An object will remain at rest or in uniform motion in a straight line unless acted upon by an external force."},
		{Question: "What is the law of conservation of energy?", Answer: "Energy can neither be created nor destroyed; rather, it can only be transformed or transferred from one form to another."},
		{Question: "What is Ohm's Law?", Answer: "The current through a conductor between two points is directly proportional to the voltage across the two points (I = V/R)."},
		{Question: "What is quantum mechanics?", Answer: "A fundamental theory in physics that provides a description of the physical properties of nature at the scale of atoms and subatomic particles."},
		{Question: "What are the three states of matter?", Answer: "Solid, liquid, and gas (plasma is sometimes considered the fourth state)."},
	},
	"mathematics": {
		{Question: "What is the Pythagorean theorem?", Answer: "In a right-angled triangle, the square of the length of the hypotenuse equals the sum of squares of the other two sides (a² + b² = c²)."},
		{Question: "What is a prime number?", Answer: "A natural number greater than 1 that is not a product of two smaller natural numbers."},
		{Question: "What is calculus?", Answer: "The mathematical study of continuous change, with two major branches: differential calculus and integral calculus."},
		{Question: "What is a function in mathematics?", Answer: "A relation between a set of inputs and a set of permissible outputs where each input is related to exactly one output."},
		{Question: "What is a logarithm?", Answer: "The power to which a base must be raised to produce a given number."},
	},
	"history": {
		{Question: "When did World War II end?", Answer: "World War II ended in 1945 with the surrender of Germany in May and Japan in September."},
		{Question: "Who was the first President of the United States?", Answer: "George Washington, who served from 1789 to 1797."},
		{Question: "What was the Renaissance?", Answer: "A period in European history marking the transition from the Middle Ages to modernity, characterized by an emphasis on art, literature, and learning."},
		{Question: "What was the Industrial Revolution?", Answer: "The transition to new manufacturing processes in Europe and the United States, in the period from about 1760 to 1840."},
		{Question: "What was the Cold War?", Answer: "A period of geopolitical tension between the Soviet Union and the United States and their respective allies from 1947 to 1991."},
	},
	"literature": {
		{Question: "Who wrote 'Romeo and Juliet'?", Answer: "William Shakespeare."},
		{Question: "What is a metaphor?", Answer: "A figure of speech in which a word or phrase is applied to an object or action to which it is not literally applicable."},
		{Question: "What is the 'stream of consciousness' technique?", Answer: "A narrative mode that seeks to portray an individual's point of view by giving the written equivalent of the character's thought processes."},
		{Question: "Who wrote '1984'?", Answer: "George Orwell."},
		{Question: "What is a protagonist?", Answer: "The leading character or one of the major characters in a drama, movie, novel, or other fictional text."},
	},
	"computer science": {
		{Question: "What is an algorithm?", Answer: "A step-by-step procedure for solving a problem or accomplishing a task."},
		{Question: "What is a variable in programming?", Answer: "A storage location paired with an associated symbolic name which contains a value."},
		{Question: "What is object-oriented programming?", Answer: "A programming paradigm based on the concept of 'objects', which can contain data and code: data in the form of fields, and code in the form of procedures."},
		{Question: "What is a database?", Answer: "An organized collection of data, generally stored and accessed electronically from a computer system."},
		{Question: "What is machine learning?", Answer: "A field of study that gives computers the ability to learn without being explicitly programmed."},
	},
}

// FallbackInfographic returns the canned record for a bucket. The result is
// a copy; callers may mutate it freely.
func FallbackInfographic(class ContentTypeClass) models.InfographicRecord {
	rec, ok := fallbackInfographics[class]
	if !ok {
		rec = fallbackInfographics[ClassGeneral]
	}

	out := models.InfographicRecord{Title: rec.Title, Summary: rec.Summary}
	out.KeyPoints = append([]string(nil), rec.KeyPoints...)
	out.Stats = append([]models.InfographicStat(nil), rec.Stats...)
	return out
}

// FallbackFlashcards returns the canned deck for a content label. Topic
// selection is deterministic: a case-insensitive substring match of the label
// against known topics, falling back to an FNV-1a hash of the label. The same
// label always yields the same deck.
func FallbackFlashcards(label string) []models.Flashcard {
	topic := fallbackTopic(label)
	return append([]models.Flashcard(nil), fallbackFlashcards[topic]...)
}

func fallbackTopic(label string) string {
	lower := strings.ToLower(label)
	for _, topic := range flashcardTopics {
		if strings.Contains(lower, topic) {
			return topic
		}
	}

	h := fnv.New32a()
	h.Write([]byte(lower))
	return flashcardTopics[int(h.Sum32())%len(flashcardTopics)]
}

// fillerKeyPoint supplies a generic entry for padding under-length keyPoints
// arrays, drawn from the bucket's canned record.
func fillerKeyPoint(class ContentTypeClass, index int) string {
	points := fallbackInfographics[ClassGeneral].KeyPoints
	if rec, ok := fallbackInfographics[class]; ok {
		points = rec.KeyPoints
	}
	return points[index%len(points)]
}

func fillerStat(class ContentTypeClass, index int) models.InfographicStat {
	stats := fallbackInfographics[ClassGeneral].Stats
	if rec, ok := fallbackInfographics[class]; ok {
		stats = rec.Stats
	}
	return stats[index%len(stats)]
}
