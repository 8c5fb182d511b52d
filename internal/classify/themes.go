package classify

import (
	"strconv"
	"strings"
)

// ThemeDefinition describes one theme in the classification taxonomy well
// enough for a model to apply it consistently.
type ThemeDefinition struct {
	Name          string
	Definition    string
	DomainContext string
	Examples      []string
	Keywords      []string
}

// Themes is the ordered theme taxonomy presented to the model. Order is
// stable so prompts and stored rationales stay comparable across runs.
var Themes = []ThemeDefinition{
	{
		Name:          "AI for Industry",
		Definition:    "AI solutions designed for specific industry verticals, addressing industry-unique challenges and leveraging domain expertise",
		DomainContext: "Industry-specific solutions across financial services, manufacturing, healthcare, retail, energy, and public services",
		Examples:      []string{"Banking fraud detection", "Manufacturing predictive maintenance", "Healthcare diagnostics", "Retail personalization"},
		Keywords:      []string{"industry", "vertical", "sector-specific", "domain expertise"},
	},
	{
		Name:          "AI in Service Lines",
		Definition:    "AI applications within specific business service areas or functional domains within enterprises",
		DomainContext: "Business-function offerings such as consulting, business operations, digital transformation, and infrastructure services",
		Examples:      []string{"HR talent analytics", "Finance automation", "Supply chain optimization", "Customer service enhancement"},
		Keywords:      []string{"service lines", "business functions", "enterprise services"},
	},
	{
		Name:          "AI for Internal Operations",
		Definition:    "AI initiatives designed to enhance an organization's own operations, employee experience, or delivery capabilities",
		DomainContext: "Internal applications improving staff productivity, project delivery, knowledge management, and organizational efficiency",
		Examples:      []string{"Employee engagement platforms", "Project management assistants", "Knowledge sharing systems", "Productivity tools"},
		Keywords:      []string{"internal", "productivity", "organizational efficiency"},
	},
	{
		Name:          "Virtual Workers / Copilots",
		Definition:    "AI-powered assistants that work alongside humans as intelligent partners, providing context-aware guidance and task automation",
		DomainContext: "Digital workforce solutions that augment human capabilities in client engagements and internal operations",
		Examples:      []string{"Code copilots", "Document assistants", "Meeting coordinators", "Research assistants"},
		Keywords:      []string{"copilot", "virtual worker", "assistant", "augmentation"},
	},
	{
		Name:          "Edge AI",
		Definition:    "AI algorithms deployed directly on local edge devices enabling real-time data processing without cloud dependency",
		DomainContext: "IoT and edge computing solutions for manufacturing, smart cities, and real-time decision making",
		Examples:      []string{"IoT sensor analytics", "Real-time video processing", "Autonomous vehicle systems", "Smart device intelligence"},
		Keywords:      []string{"edge computing", "local processing", "real-time", "IoT"},
	},
	{
		Name:          "Agents & APIs",
		Definition:    "Autonomous AI agents that can interact with external systems and APIs to accomplish complex tasks independently",
		DomainContext: "Integration solutions that connect AI capabilities with enterprise systems and third-party services",
		Examples:      []string{"API orchestration agents", "System integration bots", "Workflow automation agents"},
		Keywords:      []string{"agents", "APIs", "integration", "automation"},
	},
	{
		Name:          "Multi-modal UX",
		Definition:    "User experiences that support multiple input and output modes including visual, auditory, touch, and gesture interactions",
		DomainContext: "Advanced interface solutions for accessibility, immersive experiences, and natural human-computer interaction",
		Examples:      []string{"Voice-enabled interfaces", "Gesture recognition systems", "Mixed reality experiences", "Accessibility solutions"},
		Keywords:      []string{"multimodal", "voice", "gesture", "accessibility", "natural interaction"},
	},
	{
		Name:          "Classical AI/ML for Prediction & Recommendations",
		Definition:    "Traditional machine learning and deep learning approaches focused on prediction, classification, and recommendation systems",
		DomainContext: "Foundation ML capabilities used for predictive analytics and recommendation engines",
		Examples:      []string{"Predictive maintenance models", "Recommendation engines", "Classification systems", "Time series forecasting"},
		Keywords:      []string{"machine learning", "deep learning", "prediction", "classification", "recommendation"},
	},
	{
		Name:          "Generative AI",
		Definition:    "Generative systems that create original content including text, images, code, and other media from prompts",
		DomainContext: "Generative solutions for content creation, code generation, and creative applications",
		Examples:      []string{"Text generation", "Code synthesis", "Image creation", "Document automation"},
		Keywords:      []string{"generative AI", "content creation", "text generation", "code synthesis"},
	},
	{
		Name:          "Agentic AI",
		Definition:    "Autonomous AI systems that proactively set and pursue complex goals with minimal human intervention, using reasoning and planning",
		DomainContext: "Advanced solutions that independently manage complex workflows and make strategic decisions",
		Examples:      []string{"Strategic planning agents", "Autonomous project managers", "Self-managing workflows"},
		Keywords:      []string{"autonomous", "proactive", "reasoning", "planning", "independent"},
	},
	{
		Name:          "Orchestration & MCP",
		Definition:    "Orchestration systems and Model Context Protocol implementations for coordinating multiple AI services and data sources",
		DomainContext: "Enterprise AI infrastructure for managing complex AI workflows and integrating multiple capabilities",
		Examples:      []string{"AI workflow orchestration", "Multi-model coordination", "Context sharing systems"},
		Keywords:      []string{"orchestration", "MCP", "workflow", "coordination", "integration"},
	},
	{
		Name:          "Deep-tech Research",
		Definition:    "Advanced research in cutting-edge AI technologies, algorithms, and theoretical foundations with long-term innovation focus",
		DomainContext: "Research initiatives in advanced AI, quantum computing, and next-generation computational methods",
		Examples:      []string{"Novel AI algorithms", "Quantum-AI hybrid systems", "Advanced neural architectures"},
		Keywords:      []string{"research", "deep tech", "advanced algorithms", "innovation", "theoretical"},
	},
	{
		Name:          "AI for Creative",
		Definition:    "AI systems focused on creative applications including art, music, design, storytelling, and other creative domains",
		DomainContext: "Creative solutions for marketing, media, and entertainment",
		Examples:      []string{"AI art generation", "Music composition", "Creative writing", "Design automation"},
		Keywords:      []string{"creative", "art", "music", "design", "storytelling"},
	},
	{
		Name:          "Open Source / Open Weight Models",
		Definition:    "AI models with publicly available source code, weights, or architectures that can be freely used and modified",
		DomainContext: "Cost-effective solutions leveraging open source models for implementations and internal tools",
		Examples:      []string{"Open source LLMs", "Community models", "Permissively licensed models"},
		Keywords:      []string{"open source", "open weights", "community", "customizable"},
	},
	{
		Name:          "Proprietary Models",
		Definition:    "Commercial AI models with licensed access and usage restrictions",
		DomainContext: "Premium capabilities using commercial models for high-performance solutions",
		Examples:      []string{"Commercial LLM APIs", "Commercial vision models", "Enterprise AI APIs"},
		Keywords:      []string{"proprietary", "commercial", "licensed", "premium", "enterprise"},
	},
	{
		Name:          "Pre-built Partner Solutions",
		Definition:    "Ready-to-use AI solutions developed by technology partners and vendors for specific use cases and industries",
		DomainContext: "Vendor partnerships that deliver proven solutions quickly",
		Examples:      []string{"Partner AI platforms", "Industry-specific AI tools", "Third-party AI services"},
		Keywords:      []string{"partner", "pre-built", "vendor", "ready-to-use", "third-party"},
	},
	{
		Name:          "Responsible AI",
		Definition:    "AI development practices ensuring fairness, transparency, accountability, privacy, and ethical use of AI systems",
		DomainContext: "Ethical development and deployment practices across solutions and internal systems",
		Examples:      []string{"Bias detection systems", "AI explainability tools", "Privacy-preserving AI"},
		Keywords:      []string{"responsible", "ethical", "fairness", "transparency", "governance"},
	},
	{
		Name:          "AI for Data & Data for AI",
		Definition:    "AI systems for data management, quality, and preparation, plus data strategies that enable effective AI implementation",
		DomainContext: "Data foundation services and AI-powered data solutions",
		Examples:      []string{"Data quality AI", "Automated data prep", "Data discovery", "Training data curation"},
		Keywords:      []string{"data quality", "data preparation", "training data", "data engineering"},
	},
	{
		Name:          "AI for CyberSecurity & CyberSecurity for AI",
		Definition:    "AI applications in cybersecurity defense and security measures to protect AI systems from attacks and vulnerabilities",
		DomainContext: "Security services enhanced with AI and frameworks for protecting AI implementations",
		Examples:      []string{"AI threat detection", "Automated incident response", "Adversarial attack defense"},
		Keywords:      []string{"cybersecurity", "threat detection", "security", "protection", "defense"},
	},
	{
		Name:          "AI Observability & FinOps for AI",
		Definition:    "Monitoring, observability, and financial operations for AI systems including cost management and performance optimization",
		DomainContext: "AI operations and cost optimization for enterprise deployments and cloud spending",
		Examples:      []string{"AI performance monitoring", "Cost optimization", "AI ops dashboards"},
		Keywords:      []string{"observability", "FinOps", "monitoring", "cost management", "performance"},
	},
	{
		Name:          "AI in Software Engineering Lifecycle",
		Definition:    "AI applications throughout software development including coding, testing, deployment, and maintenance phases",
		DomainContext: "Software engineering services enhanced with AI for improved development productivity and quality",
		Examples:      []string{"AI code generation", "Automated testing", "Bug detection", "Code review automation"},
		Keywords:      []string{"software engineering", "development lifecycle", "coding", "testing", "DevOps"},
	},
	{
		Name:          "AI for Accessibility",
		Definition:    "AI solutions designed to improve accessibility and inclusion for people with disabilities and diverse needs",
		DomainContext: "Inclusive design and accessibility solutions",
		Examples:      []string{"Voice recognition for disabilities", "Visual assistance tools", "Text-to-speech"},
		Keywords:      []string{"accessibility", "inclusion", "assistive", "universal design"},
	},
}

// Industries is the vertical taxonomy presented to the model.
var Industries = []string{
	"Banking & Financial Services",
	"Insurance",
	"Healthcare & Life Sciences",
	"Manufacturing",
	"Retail & Consumer Goods",
	"Energy & Utilities",
	"Telecommunications",
	"Media & Entertainment",
	"Travel & Hospitality",
	"Transportation & Logistics",
	"Government & Public Services",
	"Education",
	"Technology & Software",
	"Agriculture",
	"Real Estate & Construction",
	"Cross-Industry",
}

// themeContext renders the taxonomy as numbered prompt context.
func themeContext() string {
	var b strings.Builder
	b.WriteString("AI THEME DEFINITIONS:\n\n")
	for i, theme := range Themes {
		b.WriteString(strconv.Itoa(i+1) + ". " + theme.Name + "\n")
		b.WriteString("   Definition: " + theme.Definition + "\n")
		b.WriteString("   Context: " + theme.DomainContext + "\n")
		b.WriteString("   Examples: " + strings.Join(theme.Examples, ", ") + "\n")
		b.WriteString("   Keywords: " + strings.Join(theme.Keywords, ", ") + "\n\n")
	}
	return b.String()
}
