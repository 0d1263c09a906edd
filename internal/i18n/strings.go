package i18n

var english = map[string]string{
	"app.title":        "QuizMaster",
	"landing.title":    "Choose Your Lecture",
	"landing.subtitle": "Select a lecture to start your interactive quiz experience",
	"landing.card":     "Lecture %d",
	"landing.topic":    "Machine Learning Fundamentals",
	"landing.count":    "%d Questions",
	"landing.progress": "%d/%d answered",
	"landing.done":     "Completed",
	"landing.global":   "Review All Favorites",

	"quiz.lecture":   "Lecture %d",
	"quiz.favorites": "Favorites",
	"quiz.counter":   "Question %d of %d",
	"quiz.number":    "Q%d",
	"quiz.submit":    "OK",
	"quiz.back":      "Back",
	"quiz.next":      "Next",
	"quiz.finish":    "Finish",
	"quiz.favorite":  "Favorite",
	"quiz.explain":   "Explanation language",
	"quiz.language":  "Language",

	"feedback.correct":   "Correct!",
	"feedback.incorrect": "Incorrect",
	"explain.correct":    "Correct Answer (%s):",
	"explain.yours":      "Your Answer (%s):",
	"explain.option":     "Option %s:",

	"dashboard.title":     "Quiz Results",
	"dashboard.correct":   "Correct",
	"dashboard.incorrect": "Incorrect",
	"dashboard.score":     "Score",
	"dashboard.favorites": "Favorites",
	"dashboard.section":   "Question Review",
	"th.qnum":             "Q#",
	"th.lecture":          "Lecture",
	"th.your_answer":      "Your Answer",
	"th.correct":          "Correct",
	"th.status":           "Status",
	"status.correct":      "Correct",
	"status.incorrect":    "Incorrect",

	"action.review_errors":    "Review Errors",
	"action.review_favorites": "Review Favorites",
	"action.retake_all":       "Retake All Questions",
	"action.view":             "View",
	"action.home":             "Home",
	"action.reset":            "Reset Session",

	"resume.title":    "Resume Quiz?",
	"resume.message":  "You have an incomplete quiz session. Would you like to continue where you left off or start fresh?",
	"resume.continue": "Continue",
	"resume.restart":  "Start Fresh",

	"review.errors_title":      "Review Incorrect Questions",
	"review.errors_message":    "How would you like to review the incorrect questions?",
	"review.favorites_title":   "Review Favorite Questions",
	"review.favorites_message": "How would you like to review your favorite questions?",
	"review.global_title":      "Review All Favorites",
	"review.global_message":    "How would you like to review all your favorite questions?",
	"review.retry":             "Retry Questions",
	"review.view":              "View with Solutions",
	"review.cancel":            "Cancel",

	"empty.errors":    "No incorrect answers to review!",
	"empty.favorites": "No favorite questions to review!",
	"empty.global":    "No favorite questions found!",

	"confirm.reset":  "Are you sure you want to reset your session? This will clear all progress.",
	"confirm.retake": "Are you sure you want to retake all questions? This will clear your current answers.",
	"confirm.yes":    "Yes",
	"confirm.no":     "No",

	"error.no_selection": "Select an answer first.",
	"error.catalog":      "No lectures found",
	"error.catalog_hint": "Check the lectures source and try again.",

	"welcome.lectures": "%d lectures loaded",
	"welcome.continue": "press any key to continue",
}

var arabic = map[string]string{
	"landing.title":    "اختر محاضرتك",
	"landing.subtitle": "اختر محاضرة لبدء تجربتك الاختبارية التفاعلية",
	"landing.card":     "محاضرة %d",
	"landing.topic":    "أساسيات التعلم الآلي",
	"landing.count":    "%d أسئلة",
	"landing.progress": "%d/%d تمت الإجابة",
	"landing.done":     "مكتمل",
	"landing.global":   "مراجعة جميع المفضلة",

	"quiz.lecture":   "محاضرة %d",
	"quiz.favorites": "المفضلة",
	"quiz.counter":   "سؤال %d من %d",
	"quiz.number":    "س%d",
	"quiz.submit":    "موافق",
	"quiz.back":      "رجوع",
	"quiz.next":      "التالي",
	"quiz.finish":    "إنهاء",
	"quiz.favorite":  "مفضلة",
	"quiz.explain":   "لغة الشرح",
	"quiz.language":  "اللغة",

	"feedback.correct":   "صحيح!",
	"feedback.incorrect": "خاطئ",
	"explain.correct":    "الإجابة الصحيحة (%s):",
	"explain.yours":      "إجابتك (%s):",
	"explain.option":     "الاختيار %s:",

	"dashboard.title":     "نتائج الاختبار",
	"dashboard.correct":   "صحيح",
	"dashboard.incorrect": "خاطئ",
	"dashboard.score":     "النتيجة",
	"dashboard.favorites": "المفضلة",
	"dashboard.section":   "مراجعة الأسئلة",
	"th.qnum":             "س#",
	"th.lecture":          "محاضرة",
	"th.your_answer":      "إجابتك",
	"th.correct":          "الصحيحة",
	"th.status":           "الحالة",
	"status.correct":      "صحيح",
	"status.incorrect":    "خاطئ",

	"action.review_errors":    "مراجعة الأخطاء",
	"action.review_favorites": "مراجعة المفضلة",
	"action.retake_all":       "إعادة جميع الأسئلة",
	"action.view":             "عرض",
	"action.home":             "الرئيسية",
	"action.reset":            "إعادة تعيين الجلسة",

	"resume.title":    "استكمال الاختبار؟",
	"resume.message":  "لديك جلسة اختبار غير مكتملة. هل تريد الاستمرار من حيث توقفت أم تبدأ من جديد؟",
	"resume.continue": "متابعة",
	"resume.restart":  "ابدأ من جديد",

	"review.errors_title":      "مراجعة الأسئلة الخاطئة",
	"review.errors_message":    "كيف تريد مراجعة الأسئلة الخاطئة؟",
	"review.favorites_title":   "مراجعة الأسئلة المفضلة",
	"review.favorites_message": "كيف تريد مراجعة الأسئلة المفضلة؟",
	"review.global_title":      "مراجعة جميع المفضلة",
	"review.global_message":    "كيف تريد مراجعة جميع أسئلتك المفضلة؟",
	"review.retry":             "إعادة المحاولة",
	"review.view":              "عرض مع الحلول",
	"review.cancel":            "إلغاء",

	"empty.errors":    "لا توجد إجابات خاطئة للمراجعة!",
	"empty.favorites": "لا توجد أسئلة مفضلة للمراجعة!",
	"empty.global":    "لم يتم العثور على أسئلة مفضلة!",

	"confirm.reset":  "هل أنت متأكد أنك تريد إعادة تعيين الجلسة؟ سيتم مسح جميع التقدم.",
	"confirm.retake": "هل أنت متأكد أنك تريد إعادة جميع الأسئلة؟ سيتم مسح إجاباتك الحالية.",
	"confirm.yes":    "نعم",
	"confirm.no":     "لا",

	"error.no_selection": "اختر إجابة أولاً.",
	"error.catalog":      "لم يتم العثور على محاضرات",
	"error.catalog_hint": "تحقق من مصدر المحاضرات وحاول مرة أخرى.",

	"welcome.lectures": "تم تحميل %d محاضرات",
	"welcome.continue": "اضغط أي مفتاح للمتابعة",
}
